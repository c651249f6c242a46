package data

type Vector map[string]float64

func (this Vector) Add(other Vector) Vector {
	result := make(Vector, len(this))
	for k, v := range this {
		result[k] = v + other[k]
	}
	return result
}

func (this Vector) Divide(scalar float64) Vector {
	result := make(Vector, len(this))
	for k, v := range this {
		result[k] = v / scalar
	}
	return result
}

// Mean averages the given vectors componentwise. Every vector is expected to
// have the same keys as the first; missing keys count as zero. Mean of no
// vectors is an empty Vector.
func Mean(vectors []Vector) Vector {
	if len(vectors) == 0 {
		return Vector{}
	}
	sum := vectors[0]
	for _, v := range vectors[1:] {
		sum = sum.Add(v)
	}
	return sum.Divide(float64(len(vectors)))
}
