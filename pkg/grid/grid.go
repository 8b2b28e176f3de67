package grid

// GetGridCoords converts a row-major buffer index into column and row.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// Index converts a column and row into a row-major buffer index.
func Index(x, y, cols int) int {
	return x + y*cols
}
