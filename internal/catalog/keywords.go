package catalog

import (
	"strings"
	"unicode/utf8"
)

// KeywordRule maps a category to the lower-case substrings that suggest it.
type KeywordRule struct {
	Category string
	Keywords []string
}

// MinGuessLength is the shortest input, in runes, that is matched.
const MinGuessLength = 2

// keywordRules is scanned in order; the first hit wins, so "vélo"
// resolves to Sport & Loisirs before Vélo. Keep the order stable.
// Matching only lower-cases the input, so the upper-case "SUV" entry
// never matches.
var keywordRules = []KeywordRule{
	{"Moto", []string{"moto", "scooter", "harley", "yamaha", "ducati", "kawasaki", "suzuki", "vespa", "125cc", "roadster"}},
	{"Véhicules", []string{"voiture", "auto", "vehicule", "véhicule", "camion", "car", "renault", "peugeot", "citroen", "tesla", "berline", "SUV", "utilitaire", "camping car"}},
	{"Électronique", []string{"iphone", "smartphone", "android", "ordinateur", "laptop", "pc", "console", "ps5", "xbox", "tv", "télévision", "tablette", "ipad", "drone", "appareil photo", "macbook"}},
	{"Informatique", []string{"ssd", "ram", "processeur", "gpu", "carte graphique", "clavier", "souris", "écran pc", "gaming pc"}},
	{"Immobilier", []string{"appartement", "maison", "studio", "villa", "colocation", "terrain", "loft", "garage", "bureau", "local commercial"}},
	{"Mobilier", []string{"canapé", "table", "chaise", "armoire", "buffet", "commode", "lit", "matelas", "meuble tv", "bibliothèque", "fauteuil"}},
	{"Maison & Jardin", []string{"tondeuse", "salon de jardin", "barbecue", "plante", "jardin", "outils jardin", "serre", "parasol", "piscine"}},
	{"Sport & Loisirs", []string{"vélo", "vtt", "tapis de course", "haltères", "fitness", "football", "basket", "raquette", "ski", "snowboard", "kayak", "surf"}},
	{"Vélo", []string{"vélo", "vtt", "fixie", "bmx", "vélo électrique", "cyclisme"}},
	{"Puériculture", []string{"poussette", "lit bébé", "siège auto", "chaise haute", "jouet bébé", "gigoteuse"}},
	{"Mode & Beauté", []string{"robe", "chaussures", "sac", "louis vuitton", "montre", "bijoux", "maquillage", "soin visage", "parfum", "nike", "adidas"}},
	{"Vêtements", []string{"t-shirt", "jean", "veste", "manteau", "pull", "costume", "chemise", "jupe", "pantalon"}},
	{"Chaussures", []string{"baskets", "sneakers", "talons", "bottes", "sandales", "escarpins", "dr martens"}},
	{"Jeux & Jouets", []string{"lego", "playmobil", "puzzle", "jeu de société", "figurine", "console retro", "pokemon"}},
	{"Musique", []string{"guitare", "piano", "synthétiseur", "batterie", "violon", "ampli", "microphone", "platines", "vinyles"}},
	{"Livres & Magazines", []string{"roman", "manga", "bd", "livre", "magazine", "encyclopédie"}},
	{"Services", []string{"cours", "coaching", "réparation", "dépannage", "garde", "ménage", "traduction"}},
	{"Animaux", []string{"chien", "chat", "poisson", "cage", "aquarium", "niche", "litière", "terrarium"}},
	{"Bricolage", []string{"perceuse", "scie", "marteau", "outil", "visseuse", "ponceuse", "établi"}},
	{"Électroménager", []string{"frigo", "réfrigérateur", "lave-linge", "lave vaisselle", "four", "micro-ondes", "aspirateur", "robot cuisine"}},
	{"Accessoires", []string{"porte-clé", "écharpe", "chapeau", "ceinture", "lunettes", "gants"}},
	{"Art & Collections", []string{"peinture", "sculpture", "poster", "collection", "figurine", "antiquité"}},
	{"Autre", []string{"divers", "autre", "insolite"}},
}

// Guess infers a category from free text such as a search query or a
// listing title. It returns false when the text is too short or no
// keyword matches.
func Guess(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinGuessLength {
		return "", false
	}

	lower := strings.ToLower(text)
	for _, rule := range keywordRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category, true
			}
		}
	}
	return "", false
}
