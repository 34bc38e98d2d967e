package dorothea

import (
	"encoding/json"
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

// Compression selects the output file filter by its detector-side name.
// ZLIB* entries map to plain deflate levels, BLOSC* entries to the blosc
// filter with byte shuffling.
type Compression struct {
	Name      string
	UseBlosc  bool
	Level     int
	Algorithm hdf5.BloscFilter
	Shuffle   hdf5.BloscShuffle
}

var compressions = map[string]Compression{
	"NOCOMPR": {Name: "NOCOMPR", Level: 0},
	"ZLIB1":   {Name: "ZLIB1", Level: 1},
	"ZLIB4":   {Name: "ZLIB4", Level: 4},
	"ZLIB5":   {Name: "ZLIB5", Level: 5},
	"ZLIB9":   {Name: "ZLIB9", Level: 9},
	"BLOSC5":  {Name: "BLOSC5", UseBlosc: true, Level: 5, Algorithm: hdf5.BLOSC_BLOSCLZ, Shuffle: hdf5.BLOSC_SHUFFLE},
	"BLZ4HC5": {Name: "BLZ4HC5", UseBlosc: true, Level: 5, Algorithm: hdf5.BLOSC_LZ4HC, Shuffle: hdf5.BLOSC_SHUFFLE},
}

// DefaultCompression is the production default, plain deflate level 4.
var DefaultCompression = compressions["ZLIB4"]

// ParseCompression resolves a configuration name. Unknown names are a
// configuration error.
func ParseCompression(name string) (Compression, error) {
	c, ok := compressions[name]
	if !ok {
		return Compression{}, fmt.Errorf("invalid compression: %s", name)
	}
	return c, nil
}

func (c Compression) String() string {
	if c.Name == "" {
		return "UNKNOWN"
	}
	return c.Name
}

func (c Compression) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Compression) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCompression(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
