package snapshot

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/go-faster/jx"
)

const (
	headerMagic = "tanuki-state"

	// Version is bumped whenever the state layout changes; older states are
	// rejected rather than misread.
	Version = 1
)

// Meta is the human-readable part of a state file, stored as a single JSON
// line ahead of the binary body.
type Meta struct {
	Rom   string
	Frame uint32
}

func encodeHeader(meta Meta) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("magic")
	e.Str(headerMagic)
	e.FieldStart("version")
	e.Int(Version)
	e.FieldStart("rom")
	e.Str(meta.Rom)
	e.FieldStart("frame")
	e.UInt32(meta.Frame)
	e.ObjEnd()
	return e.Bytes()
}

func decodeHeader(line []byte) (Meta, error) {
	var (
		meta    Meta
		magic   string
		version int
	)
	d := jx.DecodeBytes(line)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "magic":
			magic, err = d.Str()
		case "version":
			version, err = d.Int()
		case "rom":
			meta.Rom, err = d.Str()
		case "frame":
			meta.Frame, err = d.UInt32()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return Meta{}, fmt.Errorf("malformed state header: %w", err)
	}
	if magic != headerMagic {
		return Meta{}, fmt.Errorf("not a state file")
	}
	if version != Version {
		return Meta{}, fmt.Errorf("unsupported state version %d", version)
	}
	return meta, nil
}

// Save writes a state file: the JSON metadata line, then the gob-encoded
// machine state.
func Save(w io.Writer, meta Meta, state *NES) error {
	header := append(encodeHeader(meta), '\n')
	if _, err := w.Write(header); err != nil {
		return err
	}
	return gob.NewEncoder(w).Encode(state)
}

// Load reads a state file written by Save.
func Load(r io.Reader) (Meta, *NES, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return Meta{}, nil, fmt.Errorf("failed to read state header: %w", err)
	}

	meta, err := decodeHeader(line)
	if err != nil {
		return Meta{}, nil, err
	}

	state := new(NES)
	if err := gob.NewDecoder(br).Decode(state); err != nil {
		return Meta{}, nil, fmt.Errorf("failed to decode state body: %w", err)
	}
	return meta, state, nil
}
