package main

import "synthevix/cmd/sx/root"

func main() {
	root.Execute()
}
