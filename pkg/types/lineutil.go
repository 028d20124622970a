package types

// ComputeLineColumn computes line and column numbers from a byte offset in content.
// Lines and columns are 1-indexed (first line is 1, first column is 1).
func ComputeLineColumn(content []byte, byteOffset int) (line, column int) {
	line = 1
	column = 1
	for i := 0; i < byteOffset && i < len(content); i++ {
		if content[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}

// ComputeOffset is the inverse of ComputeLineColumn. Positions past the end
// of a line clamp to the line end; positions past the end of content clamp
// to len(content).
func ComputeOffset(content []byte, line, column int) int {
	offset := 0
	for l := 1; l < line; l++ {
		for offset < len(content) && content[offset] != '\n' {
			offset++
		}
		if offset == len(content) {
			return offset
		}
		offset++
	}
	for c := 1; c < column && offset < len(content) && content[offset] != '\n'; c++ {
		offset++
	}
	return offset
}
