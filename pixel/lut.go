package pixel

import "math"

// Resolution of the saturation and value axes of the HSV table.
const hsvLevels = 8

// TableSize is the number of entries in the Sine and Exp tables.
const TableSize = 256

// The tables are filled once by init and only read afterwards.
var (
	// hsvTable is indexed [hue][saturation bucket][value bucket].
	hsvTable [256][hsvLevels][hsvLevels]Pixel

	gammaTable [TableSize]uint8
	sineTable  [TableSize]uint16
	expTable   [TableSize]uint16

	// bucket holds the 8-bit level each saturation/value bucket stands for.
	bucket [hsvLevels]uint8
)

// ExpStep is the number of Exp entries per unit of exponent.
const ExpStep = 32

func init() {
	for k := range bucket {
		bucket[k] = uint8(k * 255 / (hsvLevels - 1))
	}
	for h := 0; h < 256; h++ {
		for s := 0; s < hsvLevels; s++ {
			for v := 0; v < hsvLevels; v++ {
				hsvTable[h][s][v] = hsv16(uint32(h)<<8, uint32(bucket[s])*257, uint32(bucket[v])*257)
			}
		}
	}
	for i := range gammaTable {
		gammaTable[i] = uint8(math.Round(math.Pow(float64(i)/255, 2.2) * 255))
	}
	for i := range sineTable {
		sineTable[i] = uint16(math.Round((math.Sin(2*math.Pi*float64(i)/256) + 1) / 2 * 65535))
	}
	for i := range expTable {
		expTable[i] = uint16(math.Round(math.Exp(-float64(i)/ExpStep) * 65535))
	}
}

// Gamma maps a linear channel through a 2.2 power curve.
func Gamma(c uint8) uint8 { return gammaTable[c] }

// Sine is entry i of (sin(2*pi*i/TableSize)+1)/2 scaled to 0..65535.
func Sine(i uint8) uint16 { return sineTable[i] }

// Exp is exp(-i/ExpStep) scaled to 0..65535.
func Exp(i uint8) uint16 { return expTable[i] }
