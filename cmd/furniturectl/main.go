// Command furniturectl validates furniture catalogs and drives a persisted
// sandbox world for trying placements out.
package main

func main() {
	Execute()
}
