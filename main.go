package main

import "github.com/sellerlytics/sellerlytics/cmd"

func main() {
	cmd.Execute()
}
