// Package stl reads ASCII and binary STL files into indexed meshes.
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spinetoolbox/motion/mesh"
)

// Load reads an STL file. The mesh is named after the file without its extension.
func Load(filename string, fixed bool) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return Decode(file, name, fixed)
}

// Decode reads an STL stream, detecting ASCII or binary format. Vertices with identical
// coordinates are shared between facets.
func Decode(r io.Reader, name string, fixed bool) (*mesh.Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL: %w", err)
	}

	var b builder
	if isASCII(data) {
		err = b.parseASCII(bytes.NewReader(data))
	} else {
		err = b.parseBinary(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}

	return mesh.New(name, b.vertices, b.triangles, fixed)
}

// isASCII checks the "solid" keyword, and that the size does not match a binary file,
// since some exporters start binary headers with "solid" too
func isASCII(data []byte) bool {
	if !bytes.HasPrefix(data, []byte("solid")) {
		return false
	}
	if len(data) >= 84 {
		count := binary.LittleEndian.Uint32(data[80:84])
		if uint64(len(data)) == 84+uint64(count)*50 {
			return false
		}
	}
	return true
}

type builder struct {
	vertices  []mgl64.Vec3
	triangles [][3]int
	index     map[mgl64.Vec3]int
}

func (b *builder) vertex(v mgl64.Vec3) int {
	if b.index == nil {
		b.index = make(map[mgl64.Vec3]int)
	}
	if i, ok := b.index[v]; ok {
		return i
	}
	i := len(b.vertices)
	b.vertices = append(b.vertices, v)
	b.index[v] = i
	return i
}

func (b *builder) addFacet(v [3]mgl64.Vec3) {
	b.triangles = append(b.triangles, [3]int{b.vertex(v[0]), b.vertex(v[1]), b.vertex(v[2])})
}

func (b *builder) parseASCII(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	var corners []mgl64.Vec3
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "vertex":
			if len(fields) < 4 {
				return fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var v mgl64.Vec3
			for i := 0; i < 3; i++ {
				c, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return fmt.Errorf("line %d: %w", lineNo, err)
				}
				v[i] = c
			}
			corners = append(corners, v)

		case "endfacet":
			if len(corners) != 3 {
				return fmt.Errorf("line %d: facet has %d vertices", lineNo, len(corners))
			}
			b.addFacet([3]mgl64.Vec3{corners[0], corners[1], corners[2]})
			corners = corners[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return nil
}

func (b *builder) parseBinary(reader io.Reader) error {
	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return fmt.Errorf("failed to read triangle count: %w", err)
	}

	// normal, 3 vertices, attribute byte count
	var facet struct {
		Normal    [3]float32
		Vertices  [3][3]float32
		Attribute uint16
	}
	for i := uint32(0); i < triangleCount; i++ {
		if err := binary.Read(reader, binary.LittleEndian, &facet); err != nil {
			return fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		var v [3]mgl64.Vec3
		for k, c := range facet.Vertices {
			v[k] = mgl64.Vec3{float64(c[0]), float64(c[1]), float64(c[2])}
		}
		b.addFacet(v)
	}
	return nil
}
