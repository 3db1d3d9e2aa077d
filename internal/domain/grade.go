package domain

// Grade is an ordinal seller rank. A higher rank grants access to more
// templates. The zero value is the unassigned grade: rank 0, which only
// satisfies templates requiring rank 0.
type Grade struct {
	Rank int
}

// CanUseTemplate reports whether a seller of the given grade may use the
// template. The comparison is >=, not equality: higher grades keep access to
// lower-ranked templates.
func CanUseTemplate(grade Grade, tpl Template) bool {
	return grade.Rank >= tpl.RequiredRank
}
