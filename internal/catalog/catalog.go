// Package catalog holds the portfolio content served by the site: projects,
// ventures, work history, and skills. It is the single source the indexer,
// the deep-dive resolver, and the fallback search all read from.
package catalog

import "github.com/hanifwidyanto/kirana/domain/entities"

// Default returns the portfolio corpus.
func Default() entities.Corpus {
	return entities.Corpus{
		Projects: []entities.Project{
			{
				Slug:        "lumina",
				Name:        "Lumina",
				Description: "Realtime dashboard for household solar installations, aggregating inverter telemetry and surfacing production anomalies before they show up on the bill.",
				Stack:       []string{"Go", "TimescaleDB", "MQTT", "React"},
				Year:        2024,
			},
			{
				Slug:        "kirana",
				Name:        "Kirana",
				Description: "The AI companion behind this site: personalized affirmations, a wellness chat, spoken read-aloud for long-form content, and semantic search over everything here.",
				Stack:       []string{"Go", "OpenAI", "MongoDB", "WebSocket"},
				Year:        2025,
			},
			{
				Slug:        "arsip",
				Name:        "Arsip",
				Description: "Self-hosted document archive with OCR ingestion and full-text search, built for a family business drowning in paper invoices.",
				Stack:       []string{"Go", "PostgreSQL", "Tesseract"},
				Year:        2023,
			},
			{
				Slug:        "jalur",
				Name:        "Jalur",
				Description: "Commuter rail delay predictor for the Jabodetabek network, trained on two years of scraped departure boards.",
				Stack:       []string{"Python", "Go", "Redis"},
				Year:        2022,
			},
		},
		Ventures: []entities.Venture{
			{
				Slug:        "warungtech",
				Name:        "WarungTech",
				Role:        "co-founder",
				Description: "Point-of-sale and inventory tooling for neighborhood warungs, run as a side venture with two friends from university.",
			},
		},
		Resume: []entities.ResumeEntry{
			{
				Slug:    "nimbus",
				Company: "Nimbus Cloud",
				Title:   "Senior Backend Engineer",
				Period:  "2022 - present",
				Summary: "Own the provisioning pipeline for managed databases. Cut median provision time from eleven minutes to ninety seconds by reworking the orchestration layer around idempotent steps.",
			},
			{
				Slug:    "tokopaedi",
				Company: "Tokopaedi",
				Title:   "Backend Engineer",
				Period:  "2019 - 2022",
				Summary: "Built order-fulfillment services handling peak loads of forty thousand requests per second during flash sales. On-call lead for the checkout domain.",
			},
			{
				Slug:    "freelance",
				Company: "Independent",
				Title:   "Freelance Developer",
				Period:  "2017 - 2019",
				Summary: "Delivered web platforms for small businesses across Jakarta, from booking systems to custom CMS work.",
			},
		},
		Skills: []entities.SkillGroup{
			{
				Slug:   "backend",
				Name:   "Backend",
				Skills: []string{"Go", "PostgreSQL", "MongoDB", "Redis", "gRPC", "REST API design"},
			},
			{
				Slug:   "ai",
				Name:   "AI & Data",
				Skills: []string{"LLM integration", "retrieval-augmented generation", "vector search", "speech synthesis", "prompt design"},
			},
			{
				Slug:   "infra",
				Name:   "Infrastructure",
				Skills: []string{"Kubernetes", "Terraform", "AWS", "GCP", "observability"},
			},
		},
	}
}
