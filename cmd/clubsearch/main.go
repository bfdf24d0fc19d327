// Command clubsearch searches club records from the command line.
package main

func main() {
	Execute()
}
