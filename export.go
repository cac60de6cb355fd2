package galaxy

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// ExportConfig configures the tick-state stream.
type ExportConfig struct {
	CSV      bool
	Filename string
}

// IsUseless returns whether this configuration will output anything.
func (c ExportConfig) IsUseless() bool {
	return !c.CSV
}

// StreamStates streams the output of the channel to a CSV file, one row per
// tick: elapsed seconds followed by each body's x and z. Blocks until the
// channel is closed.
func StreamStates(conf ExportConfig, stateChan <-chan State) {
	if conf.IsUseless() {
		for range stateChan {
		}
		return
	}
	f, err := os.Create(fmt.Sprintf("%s.csv", conf.Filename))
	if err != nil {
		panic(err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	wroteHeader := false
	for state := range stateChan {
		if !wroteHeader {
			header := []string{"elapsed_s"}
			for _, b := range state.Bodies {
				header = append(header, b.Name+"_x", b.Name+"_z")
			}
			if err := w.Write(header); err != nil {
				panic(err)
			}
			wroteHeader = true
		}
		record := []string{strconv.FormatFloat(state.Elapsed, 'f', 6, 64)}
		for _, b := range state.Bodies {
			record = append(record,
				strconv.FormatFloat(b.Position[0], 'f', 6, 64),
				strconv.FormatFloat(b.Position[2], 'f', 6, 64))
		}
		if err := w.Write(record); err != nil {
			panic(err)
		}
	}
}
