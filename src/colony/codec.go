package colony

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

//ErrIllegalFile is returned when a stream does not hold exactly width*height integer tokens
var ErrIllegalFile = errors.New("illegal colony file")

const (
	tokenAlive = '1'
	tokenDead  = '0'
)

//Encode writes the grid as 0/1 tokens in row-major order
//tokens are separated by a space, every row ends with a line feed
func Encode(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)
	line := make([]byte, 0, 2*g.width)
	for row := 0; row < g.height; row++ {
		line = line[:0]
		for col := 0; col < g.width; col++ {
			if col != 0 {
				line = append(line, ' ')
			}
			if g.cells[row*g.width+col] {
				line = append(line, tokenAlive)
			} else {
				line = append(line, tokenDead)
			}
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("write colony: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write colony: %w", err)
	}
	return nil
}

//Decode reads the width x height grid from whitespace separated integer tokens
//reading stops at the first token that is not a 32-bit integer, at the end of input or when the grid is full
//the token 1 is alive, any other integer is dead
func Decode(r io.Reader, width int, height int) (*Grid, error) {
	g := NewGrid(width, height)
	total := len(g.cells)
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	n := 0
	for n < total && sc.Scan() {
		v, err := strconv.ParseInt(sc.Text(), 10, 32)
		if err != nil {
			break
		}
		g.cells[n] = v == 1
		n++
	}
	if err := sc.Err(); err != nil && !errors.Is(err, bufio.ErrTooLong) {
		return nil, fmt.Errorf("read colony: %w", err)
	}
	if n != total {
		return nil, fmt.Errorf("%w: got %d cells, want %d", ErrIllegalFile, n, total)
	}
	return g, nil
}
