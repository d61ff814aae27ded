package main

import "github.com/entrepeneur4lyf/verbachat/cmd/verbachat/cmd"

func main() {
	cmd.Execute()
}
