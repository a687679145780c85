package genotype

import (
	"math"
	"reflect"
	"strconv"

	"github.com/matzehuels/potplant/pkg/plant"
)

// Round rounds v to two decimals. Exact ties round away from zero and
// negative zero becomes zero.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	a := math.Abs(v)
	if e := a * 8; e == math.Trunc(e) && math.Mod(e, 2) == 1 {
		// Only odd multiples of 1/8 sit exactly between two hundredths.
		a += 0.001
	}
	r, _ := strconv.ParseFloat(strconv.FormatFloat(a, 'f', 2, 64), 64)
	if r == 0 {
		return 0
	}
	return math.Copysign(r, v)
}

// RoundData returns a deep copy of d with every float rounded by Round.
func RoundData(d plant.Data) plant.Data {
	out := d
	roundValue(reflect.ValueOf(&out).Elem())
	return out
}

func roundValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		v.SetFloat(Round(v.Float()))
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if f := v.Field(i); f.CanSet() {
				roundValue(f)
			}
		}
	case reflect.Slice:
		if v.IsNil() {
			return
		}
		cp := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(cp, v)
		v.Set(cp)
		for i := 0; i < cp.Len(); i++ {
			roundValue(cp.Index(i))
		}
	}
}
