// words/list.go
package words

import "math/rand"

// List is the curated pool of daily challenge answers. Five letters each,
// lower-case. English only — word-list internationalization is out of scope.
var List = []string{
	"about", "apple", "beach", "brain", "bread",
	"brick", "candy", "chair", "charm", "chess",
	"cloud", "crane", "crisp", "dance", "dream",
	"drink", "eagle", "earth", "feast", "fence",
	"flame", "flock", "fruit", "ghost", "giant",
	"glass", "grape", "grasp", "green", "happy",
	"heart", "house", "juice", "knack", "lemon",
	"light", "lunar", "magic", "maple", "month",
	"mount", "music", "night", "ocean", "olive",
	"onion", "paint", "pearl", "piano", "pilot",
	"plant", "plumb", "pride", "queen", "quick",
	"radio", "raise", "ranch", "river", "roast",
	"robin", "salad", "scale", "shade", "shine",
	"smile", "snack", "solar", "spark", "spice",
	"stone", "storm", "story", "sugar", "sweet",
	"table", "tiger", "toast", "torch", "trail",
	"train", "tulip", "vivid", "wagon", "water",
	"whale", "wheat", "world", "young", "zesty",
}

// Random returns a random word from the pool.
func Random() string {
	return List[rand.Intn(len(List))]
}

// RandomExcept returns a random word different from previous, so consecutive
// daily words never repeat.
func RandomExcept(previous string) string {
	if len(List) == 1 {
		return List[0]
	}
	for {
		w := Random()
		if w != previous {
			return w
		}
	}
}
