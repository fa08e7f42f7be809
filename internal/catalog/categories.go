// Package catalog holds the closed set of listing categories and the
// keyword table used to infer a category from free text.
package catalog

// categories is the closed set of listing categories, in display order.
var categories = []string{
	"Électronique",
	"Informatique",
	"Mobilier",
	"Vêtements",
	"Chaussures",
	"Accessoires",
	"Sport & Loisirs",
	"Livres & Magazines",
	"Jeux & Jouets",
	"Maison & Jardin",
	"Électroménager",
	"Bricolage",
	"Véhicules",
	"Moto",
	"Vélo",
	"Immobilier",
	"Emploi",
	"Services",
	"Animaux",
	"Mode & Beauté",
	"Musique",
	"Films & DVD",
	"Art & Collections",
	"Puériculture",
	"Autre",
}

var categorySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}
	return set
}()

// Categories returns a copy of the category list in display order.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// IsCategory reports whether c belongs to the closed category set.
func IsCategory(c string) bool {
	_, ok := categorySet[c]
	return ok
}
