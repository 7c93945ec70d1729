package rename

// segment is either literal text or a placeholder name.
type segment struct {
	isPlaceholder bool
	value         string // placeholder name without braces, or literal text
}

// parseTemplate splits a template into segments. Placeholders are {name};
// {{ and }} are literal braces.
func parseTemplate(template string) []segment {
	if template == "" {
		return nil
	}

	var segments []segment
	var current []rune
	inPlaceholder := false

	runes := []rune(template)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '{' && i+1 < len(runes) && runes[i+1] == '{' {
			current = append(current, '{')
			i++
			continue
		}
		if r == '}' && i+1 < len(runes) && runes[i+1] == '}' {
			current = append(current, '}')
			i++
			continue
		}

		switch {
		case r == '{' && !inPlaceholder:
			if len(current) > 0 {
				segments = append(segments, segment{value: string(current)})
				current = nil
			}
			inPlaceholder = true
		case r == '}' && inPlaceholder:
			segments = append(segments, segment{isPlaceholder: true, value: string(current)})
			current = nil
			inPlaceholder = false
		default:
			current = append(current, r)
		}
	}

	// An unclosed placeholder is kept as literal text.
	if len(current) > 0 {
		v := string(current)
		if inPlaceholder {
			v = "{" + v
		}
		segments = append(segments, segment{value: v})
	}
	return segments
}
