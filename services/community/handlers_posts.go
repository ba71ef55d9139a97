// handlers_posts.go — static community posts feed.
package community

import (
	"net/http"
	"strings"

	"github.com/blackgoldstudios/animax/internal/auth"
)

// post is an editorial entry in the community feed.
type post struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
	Author   string `json:"author"`
}

// postCategories are the categories the feed can be filtered by.
var postCategories = []string{"filmes", "series", "animes", "geral"}

// communityPosts is the editorial feed. Static for now; an admin surface
// would replace this with a table.
var communityPosts = []post{
	{
		ID:       "p-1",
		Title:    "Bem-vindo à comunidade Animax!",
		Body:     "Apresente-se no mural e conte o que você está assistindo.",
		Category: "geral",
		Author:   "Equipe Animax",
	},
	{
		ID:       "p-2",
		Title:    "Maratona de clássicos do cinema",
		Body:     "Separamos os filmes mais bem avaliados do catálogo para o fim de semana.",
		Category: "filmes",
		Author:   "Equipe Animax",
	},
	{
		ID:       "p-3",
		Title:    "Qual série merece uma nova temporada?",
		Body:     "Vote no mural pela série que você quer ver renovada.",
		Category: "series",
		Author:   "Equipe Animax",
	},
	{
		ID:       "p-4",
		Title:    "Temporada de estreias de animes",
		Body:     "Os lançamentos da temporada já estão no catálogo. Confira os destaques.",
		Category: "animes",
		Author:   "Equipe Animax",
	},
	{
		ID:       "p-5",
		Title:    "Guia: escolhendo a classificação etária da sua conta",
		Body:     "Ajuste o limite de idade no seu perfil para personalizar o catálogo.",
		Category: "geral",
		Author:   "Equipe Animax",
	},
}

// handlePosts processes GET /community/posts?category=filmes.
// Without a category it returns the whole feed.
func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		auth.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET required")
		return
	}

	category := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category")))
	if category != "" && !validCategory(category) {
		auth.WriteError(w, http.StatusBadRequest, "invalid_category",
			"Category must be one of: "+strings.Join(postCategories, ", "))
		return
	}

	out := []post{}
	for _, p := range communityPosts {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}

	auth.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"posts": out,
		"count": len(out),
	})
}

func validCategory(c string) bool {
	for _, v := range postCategories {
		if v == c {
			return true
		}
	}
	return false
}
