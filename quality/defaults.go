package quality

import "github.com/fwojciec/clipper"

// DefaultConfig returns the multilingual pattern lists used to seed the
// configuration on first access. Users edit these through the
// configuration surface; the classifier never hardcodes them.
func DefaultConfig() *clipper.QualityConfig {
	cfg := &clipper.QualityConfig{
		QualityIndicators: []string{
			// English
			"research", "study", "analysis", "tutorial", "guide",
			"in-depth", "explained", "overview",
			// German
			"untersuchung", "studie", "forschung", "leitfaden",
			"anleitung", "hintergrund",
			// French
			"recherche", "étude", "analyse", "explication",
			// Spanish
			"investigación", "estudio", "análisis", "guía",
		},
		LowQualityIndicators: []string{
			// English
			"click here", "buy now", "limited offer", "sign up now",
			"sponsored", "advertisement",
			// German
			"hier klicken", "jetzt kaufen", "anzeige", "gesponsert",
			// French
			"cliquez ici", "publicité", "offre limitée",
			// Spanish
			"haz clic", "compre ahora", "publicidad",
		},
		MeaningfulContentPatterns: []string{
			// English
			"according to", "for example", "however", "in conclusion",
			"on the other hand",
			// German
			"zum beispiel", "laut", "jedoch", "zusammenfassend",
			"im gegensatz",
			// French
			"par exemple", "selon", "cependant", "en conclusion",
			// Spanish
			"por ejemplo", "según", "sin embargo", "en conclusión",
		},
		EmptyContentPatterns: []string{
			// English
			"page not found", "404 error", "access denied",
			"please enable javascript", "subscribe to continue",
			"login required",
			// German
			"seite nicht gefunden", "zugriff verweigert",
			"bitte aktivieren sie javascript",
			// French
			"page introuvable", "accès refusé",
			// Spanish
			"página no encontrada", "acceso denegado",
		},
		ExcludedURLPatterns: []string{
			".pdf", ".zip", ".doc", ".xls", ".ppt",
			".jpg", ".jpeg", ".png", ".gif", ".mp4",
			"/privacy", "/terms", "/legal", "/sitemap",
			"/login", "/signup", "/cart",
			"/impressum", "/datenschutz", "/agb",
			"/mentions-legales", "/aviso-legal",
		},
	}
	cfg.Normalize()
	return cfg
}
