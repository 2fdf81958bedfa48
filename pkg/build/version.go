package build

import "fmt"

// These get populated through build flags
var Build string
var Commit string

type VersionDescriptor struct {
	Major int
	Minor int
	Patch int
}

func (o *VersionDescriptor) String() string {
	ret := fmt.Sprintf("%d.%d.%d", o.Major, o.Minor, o.Patch)

	switch {
	case Build != "" && Commit != "":
		ret += fmt.Sprintf(" (%s, %s)", Build, Commit)
	case Build != "":
		ret += fmt.Sprintf(" (%s)", Build)
	case Commit != "":
		ret += fmt.Sprintf(" (%s)", Commit)
	}

	return ret
}

var Version = VersionDescriptor{
	Major: 0,
	Minor: 1,
	Patch: 0,
}
