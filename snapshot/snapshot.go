/*
Package snapshot stores a decoded city in a compact archive that loads much
faster than decoding the original file again.

An archive is a zstd stream holding a single line of JSON describing the city,
so it can be identified without decoding the rest, followed by the city
itself encoded with encoding/gob.
*/
package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dfloer/OpenCity2k"
	"github.com/dfloer/OpenCity2k/building"
	"github.com/dfloer/OpenCity2k/misc"
	"github.com/klauspost/compress/zstd"
)

// Version is the archive format written by Write.
const Version = 1

var errNoHeader = errors.New("snapshot: missing header line")

// Header is the JSON line at the start of every archive.
type Header struct {
	Version    int    `json:"version"`
	Name       string `json:"name"`
	Date       string `json:"date"`
	Population int32  `json:"population"`
	Scenario   bool   `json:"scenario"`
}

// VersionError is returned when reading an archive written in an unknown
// format.
type VersionError struct {
	Version int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("snapshot: unsupported version %d", e.Version)
}

func headerOf(c *opencity2k.City) Header {
	s := opencity2k.Summarize(c)
	return Header{
		Version:    Version,
		Name:       s.Name,
		Date:       s.Date.String(),
		Population: s.Population,
		Scenario:   s.Scenario,
	}
}

// Write stores c at path, creating any missing directories.
func Write(path string, c *opencity2k.City) (err error) {
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(enc, 256*1024)

	hb, err := json.Marshal(headerOf(c))
	if err != nil {
		enc.Close()
		return err
	}
	bw.Write(hb)
	bw.WriteByte('\n')

	if err = gob.NewEncoder(bw).Encode(c); err != nil {
		enc.Close()
		return fmt.Errorf("snapshot: gob encode: %w", err)
	}
	if err = bw.Flush(); err != nil {
		enc.Close()
		return err
	}

	return enc.Close()
}

func open(path string) (*os.File, *zstd.Decoder, *bufio.Reader, Header, error) {
	var h Header

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, h, err
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, nil, h, err
	}

	br := bufio.NewReaderSize(dec, 256*1024)

	line, err := br.ReadBytes('\n')
	if err != nil {
		dec.Close()
		f.Close()
		return nil, nil, nil, h, errNoHeader
	}
	if err := json.Unmarshal(line, &h); err != nil {
		dec.Close()
		f.Close()
		return nil, nil, nil, h, fmt.Errorf("snapshot: header: %w", err)
	}
	if h.Version != Version {
		dec.Close()
		f.Close()
		return nil, nil, nil, h, &VersionError{Version: h.Version}
	}

	return f, dec, br, h, nil
}

// ReadHeader returns only the header of the archive at path.
func ReadHeader(path string) (Header, error) {
	f, dec, _, h, err := open(path)
	if err != nil {
		return h, err
	}
	dec.Close()
	f.Close()
	return h, nil
}

// Read loads the city stored at path.
func Read(path string) (*opencity2k.City, error) {
	f, dec, br, _, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	defer dec.Close()

	c := new(opencity2k.City)
	if err := gob.NewDecoder(br).Decode(c); err != nil {
		return nil, fmt.Errorf("snapshot: gob decode: %w", err)
	}
	normalize(c)

	return c, nil
}

// normalize replaces maps that gob left nil with empty ones, so a city read
// back behaves the same as the one written.
func normalize(c *opencity2k.City) {
	if c.Attributes == nil {
		c.Attributes = make(map[string]int32)
	}
	if c.PopulationGraphs == nil {
		c.PopulationGraphs = make(map[string][]int32)
	}
	if c.IndustryGraphs == nil {
		c.IndustryGraphs = make(map[string][]int32)
	}
	if c.SimulatorSettings == nil {
		c.SimulatorSettings = make(map[string]int32)
	}
	if c.GameSettings == nil {
		c.GameSettings = make(map[string]int32)
	}
	if c.Inventions == nil {
		c.Inventions = make(map[string]int32)
	}
	if c.Budget.Ledgers == nil {
		c.Budget.Ledgers = make(map[string]misc.Ledger)
	}
	if c.Structures == nil {
		c.Structures = make(map[opencity2k.Coord]building.Ref)
	}
	if c.Unclassified == nil {
		c.Unclassified = make(map[opencity2k.Coord]byte)
	}
	if c.Groundcover == nil {
		c.Groundcover = make(map[opencity2k.Coord]building.Ref)
	}
	if c.Networks == nil {
		c.Networks = make(map[opencity2k.Coord]building.Ref)
	}
	if c.Graphs == nil {
		c.Graphs = make(map[string]opencity2k.Graph)
	}
}
