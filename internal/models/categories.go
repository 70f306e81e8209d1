package models

// Categories is the fixed list of post categories offered by the client.
// The server does not reject other strings; the list is served so the client
// does not have to duplicate it.
var Categories = []string{
	"Academic Resources",
	"Career Services",
	"Campus",
	"Culture",
	"Local Community Resources",
	"Social",
	"Sports",
	"Health and Wellness",
	"Technology",
	"Travel",
	"Alumni",
}
