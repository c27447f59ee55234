// Command pkgexec runs vendor installer command lines and evaluates version
// constraints from the command line.
package main

func main() {
	Execute()
}
