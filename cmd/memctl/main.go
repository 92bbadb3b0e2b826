// Command memctl inspects C type tables, layout files and binary data.
package main

func main() {
	execute()
}
