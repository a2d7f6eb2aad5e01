package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/ccicconetti/stateful-faas-sim/sim"
)

// writeCSV ports the writeln! block from bin/main.rs: a header row is
// written only when the file is new or empty — even in append mode —
// and every row (header and data) is prefixed with the caller-supplied
// additional columns.
func writeCSV(path string, appendMode bool, additionalHeader, additionalFields string, outputs []sim.Output) error {
	writeHeader := !appendMode
	if appendMode {
		info, err := os.Stat(path)
		writeHeader = err != nil || info.Size() == 0
	}

	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return fmt.Errorf("cmd: opening %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if writeHeader {
		if _, err := fmt.Fprintf(w, "%s%s\n", additionalHeader, sim.CSVHeader()); err != nil {
			return fmt.Errorf("cmd: writing header: %w", err)
		}
	}
	for _, out := range outputs {
		if _, err := fmt.Fprintf(w, "%s%s\n", additionalFields, out.CSVRow()); err != nil {
			return fmt.Errorf("cmd: writing row: %w", err)
		}
	}
	return w.Flush()
}
