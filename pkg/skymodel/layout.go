package skymodel

// Limits guarding allocations driven by header counts.
const (
	maxCount     = 1 << 20
	maxBufferLen = 1 << 31
)

// Grid dimensions of the radiance dataset, in the order used by gridPoint.
const (
	dimChannel = iota
	dimElevation
	dimAltitude
	dimAlbedo
	dimVisibility
	numDims
)

// gridPoint addresses one discrete configuration of the radiance dataset.
type gridPoint [numDims]int

// layout holds the offsets and strides of one configuration block and the
// sizes derived from the header counts.
//
// A configuration block is tensorComponents repetitions of
// (sun segments, zenith segments) followed by the emphasis segments, each
// segment stored as a (slope, value) pair.
type layout struct {
	sunOffset    int
	sunStride    int
	zenithOffset int
	zenithStride int
	emphOffset   int

	singleConfig int
	totalConfigs int
	allConfigs   int

	// strides[d] is the configuration-index step of dimension d.
	strides [numDims]int
}

// newLayout derives the layout from the header counts. dims holds the grid
// size of each dimension, indexed like gridPoint.
func newLayout(dims [numDims]int, tensorComponents, sunBreaks, zenithBreaks, emphBreaks int) (layout, error) {
	var l layout

	sunCoefs := 2 * (sunBreaks - 1)
	zenithCoefs := 2 * (zenithBreaks - 1)
	emphCoefs := 2 * (emphBreaks - 1)

	l.sunOffset = 0
	l.sunStride = sunCoefs + zenithCoefs
	l.zenithOffset = l.sunOffset + sunCoefs
	l.zenithStride = l.sunStride

	perComponents, ok := mulInt(tensorComponents, l.sunStride)
	if !ok {
		return layout{}, invalidField("tensor_components", "coefficient block size overflows")
	}
	l.emphOffset = l.sunOffset + perComponents
	l.singleConfig = l.emphOffset + emphCoefs

	l.totalConfigs = 1
	for d := 0; d < numDims; d++ {
		l.strides[d] = l.totalConfigs
		if l.totalConfigs, ok = mulInt(l.totalConfigs, dims[d]); !ok {
			return layout{}, invalidField("total_configs", "configuration count overflows")
		}
	}

	if l.allConfigs, ok = mulInt(l.totalConfigs, l.singleConfig); !ok || l.allConfigs > maxBufferLen {
		return layout{}, invalidField("total_coefs_all_configs", "%d configurations of %d coefficients exceed limit %d",
			l.totalConfigs, l.singleConfig, maxBufferLen)
	}
	return l, nil
}

// configIndex returns the position of p in the dataset, channel fastest.
func (l *layout) configIndex(p gridPoint) int {
	idx := 0
	for d := 0; d < numDims; d++ {
		idx += l.strides[d] * p[d]
	}
	return idx
}

// block returns the coefficients of configuration p.
func (l *layout) block(coefs []float64, p gridPoint) []float64 {
	start := l.configIndex(p) * l.singleConfig
	return coefs[start : start+l.singleConfig]
}

func (l *layout) sunCoefs(block []float64, component int) []float64 {
	start := l.sunOffset + component*l.sunStride
	return block[start:l.zenithOffsetOf(component)]
}

func (l *layout) zenithCoefs(block []float64, component int) []float64 {
	start := l.zenithOffsetOf(component)
	return block[start : l.sunOffset+(component+1)*l.sunStride]
}

func (l *layout) zenithOffsetOf(component int) int {
	return l.zenithOffset + component*l.zenithStride
}

func (l *layout) emphCoefs(block []float64) []float64 {
	return block[l.emphOffset:l.singleConfig]
}

// mulInt multiplies non-negative ints, reporting overflow.
func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || c < 0 {
		return 0, false
	}
	return c, true
}
