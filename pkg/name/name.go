package name

// Normalized is a project name that has been through Normalize. It is used
// both as the name of the generated project directory and as the value
// substituted for the project-name placeholder in templates.
type Normalized struct {
	value string
}

// Normalize returns the canonical form of raw. If force is set, raw is used
// verbatim. Otherwise, names that are already snake_case are kept as they
// are, and everything else (camelCase, PascalCase, mixed separators, ...)
// is converted to kebab-case.
func Normalize(raw string, force bool) Normalized {
	if force {
		return Normalized{value: raw}
	}

	snake := ToSnakeCase(raw)
	if snake == raw {
		return Normalized{value: snake}
	}

	// kebab-case input falls through to here and comes back unchanged
	return Normalized{value: ToKebabCase(raw)}
}

func (o Normalized) String() string {
	return o.value
}

func (o Normalized) IsEmpty() bool {
	return o.value == ""
}
