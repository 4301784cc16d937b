package inspiral

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// ExportConfig configures the exporting of an evolution.
type ExportConfig struct {
	Filename  string
	AsCSV     bool
	Timestamp bool      // Append the creation time to the file name.
	Epoch     time.Time // If set, each record also has the Julian date of the sample.
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV
}

// createAsCSVFile returns a file which requires a defer close statement!
func createAsCSVFile(conf ExportConfig) (*os.File, error) {
	config := inspiralConfig()
	filename := conf.Filename
	if conf.Timestamp {
		t := time.Now()
		filename = fmt.Sprintf("%s/inspiral-%s-%d-%02d-%02dT%02d.%02d.%02d.csv", config.outputDir, filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	} else {
		filename = fmt.Sprintf("%s/inspiral-%s.csv", config.outputDir, filename)
	}
	return os.Create(filename)
}

// WriteSamples writes the samples of the channel as CSV records until it is closed.
func WriteSamples(w io.Writer, conf ExportConfig, sampleChan <-chan Sample) error {
	withJD := !conf.Epoch.IsZero()
	var jd0 float64
	// Header
	hdr := fmt.Sprintf("# Creation date (UTC): %s\n# Records are t (Gyr), a (solar radii), e.\n", time.Now().UTC())
	if withJD {
		jd0 = julian.TimeToJD(conf.Epoch)
		hdr += fmt.Sprintf("#   Epoch (UTC): %s (JD %f)\n", conf.Epoch.UTC(), jd0)
	}
	if _, err := io.WriteString(w, hdr); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cols := []string{"t", "a", "e"}
	if withJD {
		cols = append(cols, "jd")
	}
	if err := cw.Write(cols); err != nil {
		return err
	}
	for s := range sampleChan {
		record := []string{
			strconv.FormatFloat(s.T, 'g', -1, 64),
			strconv.FormatFloat(s.A, 'g', -1, 64),
			strconv.FormatFloat(s.E, 'g', -1, 64),
		}
		if withJD {
			record = append(record, strconv.FormatFloat(jd0+s.T*1e9*daysPerYear, 'f', 6, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// StreamSamples streams the output of the channel to the file configured in conf.
func StreamSamples(conf ExportConfig, sampleChan <-chan Sample) error {
	f, err := createAsCSVFile(conf)
	if err != nil {
		// Drain so that the producer never blocks.
		for range sampleChan {
		}
		return err
	}
	defer f.Close()
	if err := WriteSamples(f, conf, sampleChan); err != nil {
		for range sampleChan {
		}
		return err
	}
	return nil
}

// Export writes this trajectory according to the configuration.
func (tr Trajectory) Export(conf ExportConfig) error {
	if conf.IsUseless() {
		return nil
	}
	var (
		wg  sync.WaitGroup
		err error
	)
	sampleChan := make(chan Sample, 1000) // a 1k entry buffer
	wg.Add(1)
	go func() {
		defer wg.Done()
		err = StreamSamples(conf, sampleChan)
	}()
	for i := 0; i < tr.Len(); i++ {
		sampleChan <- tr.At(i)
	}
	close(sampleChan)
	wg.Wait() // Don't return until we're done writing the file.
	return err
}
