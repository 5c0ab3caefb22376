package domain

// StyleOption is one entry of the fixed style catalog.
type StyleOption struct {
	Name           string
	PromptText     string
	PlaceholderURL string
}

const GenericPlaceholderURL = "https://placehold.co/600x400/3c3c3c/ffffff?text=Imagem+Editada"

// The prompt texts are sent verbatim to the stylization service.
var styleCatalog = []StyleOption{
	{
		Name:           "Ghibli",
		PromptText:     "Transforme esta imagem no estilo dos filmes do Studio Ghibli, com elementos mágicos, cores suaves e personagens fofos.",
		PlaceholderURL: "https://placehold.co/600x400/a8c49e/ffffff?text=Estilo+Ghibli",
	},
	{
		Name:           "Pixel Art",
		PromptText:     "Converta esta imagem em pixel art com cores vibrantes e detalhes em baixa resolução estilo anos 80/90.",
		PlaceholderURL: "https://placehold.co/600x400/98DDCA/ffffff?text=Pixel+Art",
	},
	{
		Name:           "Bobbie",
		PromptText:     "Aplique um estilo fofo e adorável com tons pastel, elementos fofinhos e uma atmosfera aconchegante.",
		PlaceholderURL: "https://placehold.co/600x400/FF7B9C/ffffff?text=Estilo+Bobbie",
	},
	{
		Name:           "Cyber",
		PromptText:     "Transforme esta imagem em um estilo cyberpunk futurista com neon, elementos tecnológicos e uma estética de cidade futurista.",
		PlaceholderURL: "https://placehold.co/600x400/00FFFF/000000?text=Cyberpunk",
	},
	{
		Name:           "Pistache",
		PromptText:     "Aplique tons verdes suaves, elementos naturais e uma estética fresca e orgânica à imagem.",
		PlaceholderURL: "https://placehold.co/600x400/70AD47/ffffff?text=Estilo+Pistache",
	},
	{
		Name:           "Vintage",
		PromptText:     "Dê um efeito vintage à imagem com sépia, grãos, desbotamento e um estilo retrô anos 70.",
		PlaceholderURL: "https://placehold.co/600x400/6F4E37/ffffff?text=Vintage",
	},
	{
		Name:           "P. Branco",
		PromptText:     "Converta a imagem para preto e branco com alto contraste e tons dramáticos.",
		PlaceholderURL: "https://placehold.co/600x400/333333/EAEAEA?text=Preto+Branco",
	},
}

var styleIndex = func() map[string]StyleOption {
	index := make(map[string]StyleOption, len(styleCatalog))
	for _, s := range styleCatalog {
		index[s.Name] = s
	}
	return index
}()

// LookupStyle finds a catalog entry by its exact name.
func LookupStyle(name string) (StyleOption, bool) {
	s, ok := styleIndex[name]
	return s, ok
}

// Styles returns the catalog in display order.
func Styles() []StyleOption {
	out := make([]StyleOption, len(styleCatalog))
	copy(out, styleCatalog)
	return out
}
