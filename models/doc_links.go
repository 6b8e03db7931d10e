package models

// DocLinks points a reviewer at the two anonymized response documents of a
// patient.
type DocLinks struct {
	ModelAUrl string
	ModelBUrl string
}

// DocLinksMap holds the document links per patient id.
type DocLinksMap map[string]DocLinks
