package validation

import (
	"strconv"
	"strings"
)

// expand resolves "*" segments against doc into concrete element paths
// ("localizacao.coordinates.*" -> "localizacao.coordinates[0]", ...). A
// wildcard over a missing or non-array value selects nothing.
func expand(doc Document, path string) []string {
	i := strings.Index(path, ".*")
	if i < 0 {
		return []string{path}
	}
	base, rest := path[:i], strings.TrimPrefix(path[i+2:], ".")
	v, ok := get(doc, base)
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for n := range arr {
		p := base + "[" + strconv.Itoa(n) + "]"
		if rest != "" {
			p += "." + rest
		}
		out = append(out, expand(doc, p)...)
	}
	return out
}

type segment struct {
	key   string
	index int // -1 for object keys
}

func split(path string) []segment {
	var segs []segment
	for _, part := range strings.Split(path, ".") {
		key := part
		var idx []int
		for {
			open := strings.LastIndexByte(key, '[')
			if open < 0 || !strings.HasSuffix(key, "]") {
				break
			}
			n, err := strconv.Atoi(key[open+1 : len(key)-1])
			if err != nil {
				break
			}
			idx = append([]int{n}, idx...)
			key = key[:open]
		}
		if key != "" {
			segs = append(segs, segment{key: key, index: -1})
		}
		for _, n := range idx {
			segs = append(segs, segment{index: n})
		}
	}
	return segs
}

func get(doc Document, path string) (any, bool) {
	var cur any = map[string]any(doc)
	for _, s := range split(path) {
		switch node := cur.(type) {
		case map[string]any:
			if s.index >= 0 {
				return nil, false
			}
			v, ok := node[s.key]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			if s.index < 0 || s.index >= len(node) {
				return nil, false
			}
			cur = node[s.index]
		default:
			return nil, false
		}
	}
	return cur, true
}

// set writes v at path, creating intermediate objects as needed. Array
// elements are only replaced, never appended.
func set(doc Document, path string, v any) {
	segs := split(path)
	if len(segs) == 0 {
		return
	}
	var cur any = map[string]any(doc)
	for i, s := range segs {
		last := i == len(segs)-1
		switch node := cur.(type) {
		case map[string]any:
			if s.index >= 0 {
				return
			}
			if last {
				node[s.key] = v
				return
			}
			next, ok := node[s.key]
			if !ok || next == nil {
				if segs[i+1].index >= 0 {
					return
				}
				next = map[string]any{}
				node[s.key] = next
			}
			cur = next
		case []any:
			if s.index < 0 || s.index >= len(node) {
				return
			}
			if last {
				node[s.index] = v
				return
			}
			cur = node[s.index]
		default:
			return
		}
	}
}
