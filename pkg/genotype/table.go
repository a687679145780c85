package genotype

import "strings"

// substitution replaces a JSON fragment with a short token.
type substitution struct {
	pattern string
	token   string
}

// table is applied top to bottom in both directions.
var table = []substitution{
	{`{"stalkCount":`, `>`},
	{`,"stalkSpread":`, `Sd`},
	{`,"baseBrown":{`, `Q`},
	{`"r":`, `;`},
	{`,"g":`, `&`},
	{`,"b":`, `~`},
	{`,"a":`, `'`},
	{`},"baseGreen":{`, `K`},
	{`},"leafTextureData":{`, `LTD`},
	{`"colors":{`, `CL`},
	{`"baseColor":{`, `BC`},
	{`},"gradientColor":{`, `GC`},
	{`},"veinColor":{`, `VC`},
	{`}},"params":{`, `ltP`},
	{`"gradientFactor":`, `GF`},
	{`,"verticalVeinWidth":`, `VVW`},
	{`,"veinCount":`, `VN`},
	{`,"veinSlope":`, `VS`},
	{`,"veinThickness":`, `VT`},
	{`}},"potTextureData":{`, `PTD`},
	{`},"shadowIntensity":`, `s%`},
	{`,"highlightIntensity":`, `h%`},
	{`},"potData":{`, `PD`},
	{`"position":{`, `#`},
	{`"x":`, `X`},
	{`,"y":`, `Y`},
	{`,"z":`, `Z`},
	{`},"rotation":{`, `@`},
	{`},"meshParams":{`, `*`},
	{`"height":`, `hT`},
	{`,"bottomRadius":`, `BR`},
	{`,"slant":`, `/`},
	{`,"extrusionWidth":`, `Ow`},
	{`,"extrusionLevel":`, `Ol`},
	{`,"resolution":`, `?`},
	{`}},"stalkData":[{`, `$S`},
	{`"length":`, `_`},
	{`,"curvature":`, `(`},
	{`,"thickness":`, `=`},
	{`}},{`, `+`},
	{`}}],"leafData":[{`, `$L`},
	{`,"width":`, `|`},
	{`,"skew":`, `^`},
	{`,"outline":`, `U`},
	{`null`, `!`},
	{`}}]}`, `<`},
}

func compress(s string) string {
	for _, sub := range table {
		s = strings.ReplaceAll(s, sub.pattern, sub.token)
	}
	return s
}

func expand(s string) string {
	for _, sub := range table {
		s = strings.ReplaceAll(s, sub.token, sub.pattern)
	}
	return s
}
