package exclusions

// Group IDs referenced by the catalog's services. The IDs are plain strings
// in the database; this table only adds behavior flags.
const (
	GroupBar         = "bar"
	GroupDecor       = "decor"
	GroupPhotography = "photography"
	GroupToast       = "toast"
	GroupPhotobooth  = "photobooth"
)

// Group carries behavior flags for an exclusion group. TwoWay groups are
// symmetric alternative pairs: the non-active member is always switchable,
// regardless of the tier policy.
type Group struct {
	ID     string
	Name   string
	TwoWay bool
}

var knownGroups = map[string]Group{
	GroupBar:         {ID: GroupBar, Name: "Bar Package"},
	GroupDecor:       {ID: GroupDecor, Name: "Decoration"},
	GroupPhotography: {ID: GroupPhotography, Name: "Photo & Video Coverage"},
	GroupToast:       {ID: GroupToast, Name: "Welcome Toast", TwoWay: true},
	GroupPhotobooth:  {ID: GroupPhotobooth, Name: "Photobooth", TwoWay: true},
}

// IsTwoWay reports whether a group is a symmetric alternative pair. Unknown
// groups are not.
func IsTwoWay(groupID string) bool {
	return knownGroups[groupID].TwoWay
}
