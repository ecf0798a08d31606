package style

import (
	"fmt"
	"strconv"
	"strings"
)

// glassBlur is the backdrop blur emitted alongside a glass fill.
const glassBlur = "blur(12px)"

// defaultAngle is the gradient angle used by the two-argument linear form.
const defaultAngle = "135deg"

// resolveFill maps a container or styledef fill value to declarations.
//
// A value naming a defined styledef inlines that style. A value shaped
// like a function call dispatches on the function name; an unrecognized
// function, or a plain value, becomes a direct background fill.
func (r *Resolver) resolveFill(value string, seen map[string]bool) []Declaration {
	if sd, ok := r.styles[value]; ok {
		return r.inline(sd, seen)
	}

	name, args, ok := splitCall(value)
	if !ok {
		return []Declaration{{Prop: "background", Value: value}}
	}

	switch name {
	case "flat":
		if len(args) == 1 {
			return []Declaration{{Prop: "background", Value: args[0]}}
		}
	case "linear":
		if len(args) >= 3 {
			// Explicit leading angle.
			return []Declaration{{Prop: "background", Value: fmt.Sprintf("linear-gradient(%s)", strings.Join(args, ", "))}}
		}
		if len(args) == 2 {
			return []Declaration{{Prop: "background", Value: fmt.Sprintf("linear-gradient(%s, %s, %s)", defaultAngle, args[0], args[1])}}
		}
	case "radial":
		if len(args) >= 1 {
			return []Declaration{{Prop: "background", Value: fmt.Sprintf("radial-gradient(circle, %s)", strings.Join(args, ", "))}}
		}
	case "glass":
		if len(args) >= 1 {
			return glassFill(args)
		}
	case "texture":
		if len(args) >= 1 {
			return textureFill(args)
		}
	}

	// Unknown function name, or a known one with an unusable arity: treat
	// the whole value as a direct fill.
	return []Declaration{{Prop: "background", Value: value}}
}

// glassFill converts a hex color plus an opacity into a translucent
// background and adds a backdrop blur. Non-hex colors pass through
// unconverted.
func glassFill(args []string) []Declaration {
	color := args[0]
	opacity := "1"
	if len(args) >= 2 {
		opacity = args[1]
	}

	background := color
	if red, green, blue, ok := parseHexColor(color); ok {
		background = fmt.Sprintf("rgba(%d, %d, %d, %s)", red, green, blue, opacity)
	}

	return []Declaration{
		{Prop: "background", Value: background},
		{Prop: "backdrop-filter", Value: glassBlur},
	}
}

// texture patterns overlaid on a flat fill, keyed by the optional second
// argument.
var texturePatterns = map[string][]Declaration{
	"lines": {
		{Prop: "background-image", Value: "repeating-linear-gradient(45deg, rgba(255, 255, 255, 0.04) 0px, rgba(255, 255, 255, 0.04) 2px, transparent 2px, transparent 6px)"},
	},
	"dots": {
		{Prop: "background-image", Value: "radial-gradient(rgba(255, 255, 255, 0.06) 1px, transparent 1px)"},
		{Prop: "background-size", Value: "8px 8px"},
	},
	"grid": {
		{Prop: "background-image", Value: "linear-gradient(rgba(255, 255, 255, 0.04) 1px, transparent 1px), linear-gradient(90deg, rgba(255, 255, 255, 0.04) 1px, transparent 1px)"},
		{Prop: "background-size", Value: "16px 16px"},
	},
}

// textureFill is a flat fill with a procedural pattern overlay.
func textureFill(args []string) []Declaration {
	kind := "lines"
	if len(args) >= 2 {
		kind = args[1]
	}
	pattern, ok := texturePatterns[kind]
	if !ok {
		pattern = texturePatterns["lines"]
	}

	decls := []Declaration{{Prop: "background-color", Value: args[0]}}
	return append(decls, pattern...)
}

// parseHexColor reads a #rgb or #rrggbb color. The 3-digit form expands by
// doubling each digit before channel extraction.
func parseHexColor(s string) (red, green, blue int, ok bool) {
	if !strings.HasPrefix(s, "#") {
		return 0, 0, 0, false
	}
	hex := s[1:]

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}

	channels := make([]int, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return 0, 0, 0, false
		}
		channels[i] = int(v)
	}
	return channels[0], channels[1], channels[2], true
}

// splitCall recognizes values shaped like ident(arg, arg, ...). It reports
// ok=false for anything else, including values with trailing text after
// the closing parenthesis.
func splitCall(value string) (name string, args []string, ok bool) {
	open := strings.IndexByte(value, '(')
	if open <= 0 || !strings.HasSuffix(value, ")") {
		return "", nil, false
	}

	name = value[:open]
	for _, ch := range name {
		if !isIdentRune(ch) {
			return "", nil, false
		}
	}

	inner := value[open+1 : len(value)-1]
	return name, splitTopLevel(inner), true
}

// splitTopLevel splits on commas outside parentheses, trimming each
// argument. Commas nested inside a parenthesized argument do not split.
func splitTopLevel(s string) []string {
	var args []string
	depth, start := 0, 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}

	last := strings.TrimSpace(s[start:])
	if last != "" || len(args) > 0 {
		args = append(args, last)
	}
	return args
}

func isIdentRune(ch rune) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '_', ch == '-':
		return true
	}
	return false
}
