package main

import "github.com/thirdweb-dev/walletbridge/cmd"

func main() {
	cmd.Execute()
}
