package ideas

import "fmt"

// Template is a fixed idea skeleton. Title, hook and description are
// produced from the niche; everything else is copied verbatim.
type Template struct {
	ID             string
	Title          func(niche string) string
	Hook           func(niche string) string
	Description    func(niche string) string
	Audience       string
	Elements       []string
	Thumbnails     []string
	ViralPotential int
	EstimatedViews string
}

// Templates returns a deep copy of the built-in template table
func Templates() []Template {
	out := make([]Template, len(templates))
	for i, t := range templates {
		t.Elements = append([]string(nil), t.Elements...)
		t.Thumbnails = append([]string(nil), t.Thumbnails...)
		out[i] = t
	}
	return out
}

var templates = []Template{
	{
		ID: "thirty-day-transformation",
		Title: func(n string) string {
			return fmt.Sprintf("I Tried %s for 30 Days - Shocking Results!", n)
		},
		Hook: func(n string) string {
			return `"I thought ` + n + ` was a waste of time until THIS happened..."`
		},
		Description: func(n string) string {
			return fmt.Sprintf("Follow a 30-day transformation journey in %s with unexpected results that will change your perspective. "+
				"This documentary-style video tracks daily progress, challenges, and breakthrough moments.", n)
		},
		Audience: "People curious about starting or improving in this niche, ages 18-35",
		Elements: []string{"Transformation story", "Daily documentation", "Raw authenticity", "Surprising outcome"},
		Thumbnails: []string{
			"Split screen: Day 1 vs Day 30 comparison",
			`Shocked expression with "30 DAYS" text overlay`,
			"Before/after result with bright yellow border",
		},
		ViralPotential: 9,
		EstimatedViews: "2-5M",
	},
	{
		ID: "doing-it-wrong",
		Title: func(n string) string {
			return fmt.Sprintf("Why Everyone's Doing %s WRONG (Pro Secrets)", n)
		},
		Hook: func(n string) string {
			return `"If you're doing ` + n + ` like this, STOP immediately..."`
		},
		Description: func(n string) string {
			return fmt.Sprintf("Expose the common mistakes people make in %s and reveal professional-level techniques that most beginners don't know. "+
				"This controversial take challenges conventional wisdom and provides actionable insights.", n)
		},
		Audience: "Beginners and intermediates looking to improve, ages 16-40",
		Elements: []string{"Controversial take", "Expert authority", "Common mistakes", "Pro tips"},
		Thumbnails: []string{
			"Red X over common mistake, green check on correct method",
			`Frustrated person with "WRONG" in red text`,
			"Secret revealed with mysterious background",
		},
		ViralPotential: 8,
		EstimatedViews: "1-3M",
	},
	{
		ID: "zero-to-ten-k",
		Title: func(n string) string {
			return fmt.Sprintf("$0 to $10,000 %s Challenge (NO CLICKBAIT)", n)
		},
		Hook: func(n string) string {
			return `"Starting with absolutely nothing in ` + n + `, watch what happens in 7 days..."`
		},
		Description: func(n string) string {
			return fmt.Sprintf("An authentic challenge documenting the journey from zero to significant results in %s. "+
				"No fake setups, just real hustle, failures, and unexpected wins. "+
				"Follow every step of the process with full transparency.", n)
		},
		Audience: "Aspiring creators and hustlers, ages 18-30",
		Elements: []string{"Challenge format", "Transparency", "Relatable struggle", "Inspiring success"},
		Thumbnails: []string{
			"Progress bar from $0 to $10K with excited reaction",
			`Stack of cash with "7 DAYS" text`,
			"Journey timeline with milestone markers",
		},
		ViralPotential: 10,
		EstimatedViews: "5-10M",
	},
	{
		ID: "experts-hate-trick",
		Title: func(n string) string {
			return fmt.Sprintf("%s Experts HATE This Simple Trick", n)
		},
		Hook: func(n string) string {
			return `"This one ` + n + ` hack changed everything, and it takes 5 minutes..."`
		},
		Description: func(n string) string {
			return fmt.Sprintf("Discover a game-changing shortcut in %s that professionals don't want you to know about. "+
				"This simple but powerful technique delivers results without the complexity or expense of traditional methods.", n)
		},
		Audience: "People seeking shortcuts and life hacks, ages 20-45",
		Elements: []string{"Simplicity angle", "Authority challenge", "Quick results", "Hack/trick format"},
		Thumbnails: []string{
			`Mind-blown expression with "SIMPLE TRICK" text`,
			"Before/after with time indicator",
			"Experts looking shocked in corner",
		},
		ViralPotential: 7,
		EstimatedViews: "800K-2M",
	},
	{
		ID: "cheap-vs-expensive",
		Title: func(n string) string {
			return fmt.Sprintf("I Bought the CHEAPEST vs MOST EXPENSIVE %s", n)
		},
		Hook: func(n string) string {
			return `"Can a $10 ` + n + ` setup compete with a $10,000 one? The answer shocked me..."`
		},
		Description: func(n string) string {
			return fmt.Sprintf("An entertaining comparison testing budget versus premium options in %s. "+
				"Featuring detailed analysis, surprising discoveries, and honest recommendations about whether expensive gear is worth it.", n)
		},
		Audience: "Budget-conscious consumers and enthusiasts, ages 18-35",
		Elements: []string{"Comparison format", "Entertainment value", "Practical insights", "Surprise factor"},
		Thumbnails: []string{
			"Split screen: cheap vs expensive side by side",
			"Shocked face between two products",
			`Price tags with "VS" in bold letters`,
		},
		ViralPotential: 9,
		EstimatedViews: "3-7M",
	},
}
