// Command hithread prints two interleaved counted loops, one of them on a
// spawned goroutine, and exits once the spawned goroutine has been joined.
package main

func main() {
	Execute()
}
