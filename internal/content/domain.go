package content

// Domain names one content collection. It doubles as the static dataset
// file name and the prefix of the local store key.
type Domain string

const (
	DomainStories               Domain = "stories"
	DomainTestimonials          Domain = "testimonials"
	DomainTestimonialCategories Domain = "testimonials_categories"
	DomainPostcards             Domain = "postcards"
	DomainPostcardCategories    Domain = "postcards_categories"
	DomainPostcardsBase         Domain = "postcards_base"
	DomainBibliotecaItems       Domain = "biblioteca_items"
	DomainBibliotecaCategories  Domain = "biblioteca_categories"
	DomainGaleriaImages         Domain = "galeria_images"
	DomainCommunities           Domain = "communities"
	DomainProgramacaoEvents     Domain = "programacao_events"
	DomainProgramacaoCategories Domain = "programacao_categories"
)

// Domains lists every collection, in dataset load order.
var Domains = []Domain{
	DomainStories,
	DomainTestimonials,
	DomainTestimonialCategories,
	DomainPostcards,
	DomainPostcardCategories,
	DomainPostcardsBase,
	DomainBibliotecaItems,
	DomainBibliotecaCategories,
	DomainGaleriaImages,
	DomainCommunities,
	DomainProgramacaoEvents,
	DomainProgramacaoCategories,
}

// StorageKey is the local store key holding the domain's saved list,
// for example "stories_data".
func (d Domain) StorageKey() string {
	return string(d) + "_data"
}

// IDPrefix is the prefix of ids minted for locally saved entities.
func (d Domain) IDPrefix() string {
	switch d {
	case DomainStories:
		return "story"
	case DomainTestimonials:
		return "testimonial"
	case DomainPostcards:
		return "postcard"
	case DomainCommunities:
		return "community"
	default:
		return string(d)
	}
}
