package chartstyle

// Options is the renderer option tree. Its schema belongs to the chart
// library, so it is kept in the generic shape produced by encoding/json.
type Options map[string]any

// section returns parent[key] as an object, creating it when missing or
// when the existing value is not an object.
func section(parent map[string]any, key string) map[string]any {
	switch v := parent[key].(type) {
	case map[string]any:
		return v
	case Options:
		return v
	}
	m := map[string]any{}
	parent[key] = m
	return m
}

// axes returns every axis object under key. A single axis and an array of
// axes get the same treatment. A missing axis group is created as one object.
func axes(opts Options, key string) []map[string]any {
	switch v := opts[key].(type) {
	case map[string]any:
		return []map[string]any{v}
	case Options:
		return []map[string]any{v}
	case []map[string]any:
		return v
	case []Options:
		return fromOptions(v)
	case []any:
		return objects(v)
	}
	m := map[string]any{}
	opts[key] = m
	return []map[string]any{m}
}

// seriesList returns the series objects, skipping anything that isn't one.
func seriesList(opts Options) []map[string]any {
	switch v := opts["series"].(type) {
	case []map[string]any:
		return v
	case []Options:
		return fromOptions(v)
	case []any:
		return objects(v)
	}
	return nil
}

// objects keeps the elements of a decoded array that are objects.
func objects(items []any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		switch m := item.(type) {
		case map[string]any:
			out = append(out, m)
		case Options:
			out = append(out, m)
		}
	}
	return out
}

func fromOptions(items []Options) []map[string]any {
	out := make([]map[string]any, len(items))
	for i, m := range items {
		out[i] = m
	}
	return out
}

func merge(dst map[string]any, src map[string]any) {
	for k, v := range src {
		dst[k] = v
	}
}
