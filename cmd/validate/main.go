// Command validate replays a Connect-Four move log and prints the step
// mapping as JSON.
//
//	validate '[3,3,4,4,5,5,6]'
//	echo '[0,1,0,1]' | validate -pretty
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/iamasit07/connect4-engine/internal/service/game"
)

func main() {
	pretty := flag.Bool("pretty", false, "indent the output")
	flag.Parse()

	log.SetOutput(os.Stderr)
	if err := run(flag.Args(), os.Stdin, os.Stdout, *pretty); err != nil {
		log.Fatalf("validate: %v", err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer, pretty bool) error {
	var input []byte
	switch len(args) {
	case 0:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		input = data
	case 1:
		input = []byte(args[0])
	default:
		return fmt.Errorf("expected one JSON move array, got %d arguments", len(args))
	}

	var moves []int
	if err := json.Unmarshal(input, &moves); err != nil {
		return fmt.Errorf("moves must be a JSON array of column indexes: %w", err)
	}

	enc := json.NewEncoder(stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(game.Validate(moves))
}
