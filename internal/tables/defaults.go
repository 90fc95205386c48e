// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tables provides the built-in keyword tables that drive relevance
// scoring and trend aggregation, and loads YAML overrides for them.
package tables

import "github.com/pdiddy/paper-digest/pkg/types"

// DefaultScoring returns the built-in scoring tables, tuned for a
// web-engineering audience. Each call returns a fresh copy.
func DefaultScoring() types.ScoringTables {
	return types.ScoringTables{
		Tiers: []types.KeywordTier{
			{
				Name: "high",
				Keywords: []string{
					"llm", "large language model", "code generation", "copilot",
					"coding assistant", "software engineering", "program synthesis",
					"code review", "developer productivity", "web application",
				},
				Weight:     3.0,
				TitleBonus: 1.0,
			},
			{
				Name: "medium",
				Keywords: []string{
					"agent", "retrieval augmented generation", "rag", "transformer",
					"automated testing", "bug detection", "api", "tool use",
					"prompt engineering", "code completion",
				},
				Weight:     2.0,
				TitleBonus: 0.5,
			},
			{
				Name: "basic",
				Keywords: []string{
					"neural network", "deep learning", "machine learning",
					"reinforcement learning", "natural language processing",
					"fine-tuning", "few-shot", "zero-shot", "in-context learning",
					"multimodal", "diffusion", "generative",
				},
				Weight: 1.0,
			},
		},
		Exclusions: types.PhraseSet{
			Phrases: []string{
				"medical imaging", "clinical", "protein", "molecular", "genomic",
				"astrophysics", "particle physics", "drug discovery",
			},
			Weight: 2.0,
		},
		Affiliations: types.PhraseSet{
			Phrases: []string{
				"google", "deepmind", "meta", "microsoft", "openai", "anthropic",
				"stanford", "berkeley", "carnegie mellon", "mit",
			},
			Weight: 2.0,
		},
		Practical: types.PhraseSet{
			Phrases: []string{
				"open source", "open-source", "github", "implementation",
				"framework", "toolkit", "production", "deployment", "real-world",
				"benchmark",
			},
			Weight: 0.5,
		},
		BonusCategories: types.CategorySet{
			Tags:  []string{"cs.SE", "cs.HC", "cs.IR", "cs.DB", "cs.DC", "cs.PL", "cs.CR"},
			Bonus: 2.0,
		},
		AuthorBands: types.AuthorBands{
			SweetMin:     2,
			SweetMax:     8,
			SweetBonus:   0.5,
			CrowdMax:     15,
			CrowdPenalty: 0.5,
		},
		Recency: []types.RecencyBand{
			{MaxAgeDays: 2, Bonus: 1.5},
			{MaxAgeDays: 30, Bonus: 1.0},
		},
	}
}

// DefaultTrend returns the built-in trend tables. Each call returns a
// fresh copy.
func DefaultTrend() types.TrendTables {
	return types.TrendTables{
		Categories: []types.TrendCategory{
			{
				Name:    "ai_ml",
				Display: "AI/ML",
				Keywords: []string{
					"llm", "large language model", "gpt", "transformer", "attention",
					"diffusion", "generative ai", "foundation model", "multimodal",
					"retrieval augmented generation", "rag", "fine-tuning", "rlhf",
					"chain of thought", "in-context learning", "few-shot", "zero-shot",
				},
			},
			{
				Name:    "development",
				Display: "Development",
				Keywords: []string{
					"code generation", "copilot", "coding assistant", "automated testing",
					"ci/cd", "devops", "microservices", "serverless", "containerization",
					"kubernetes", "api", "rest", "graphql", "websocket", "real-time",
				},
			},
			{
				Name:    "web_tech",
				Display: "Web",
				Keywords: []string{
					"react", "vue", "angular", "svelte", "nextjs", "nuxt", "remix",
					"typescript", "javascript", "node.js", "deno", "bun",
					"tailwind", "css", "html", "pwa", "spa", "ssr", "ssg",
				},
			},
			{
				Name:    "data_infra",
				Display: "Data & Infrastructure",
				Keywords: []string{
					"database", "nosql", "sql", "postgresql", "mongodb", "redis",
					"elasticsearch", "vector database", "embedding", "search",
					"caching", "cdn", "cloud", "aws", "azure", "gcp", "edge computing",
				},
			},
			{
				Name:    "security",
				Display: "Security",
				Keywords: []string{
					"security", "authentication", "authorization", "oauth", "jwt",
					"encryption", "vulnerability", "privacy", "gdpr", "compliance",
					"zero trust", "devsecops", "penetration testing", "threat detection",
				},
			},
			{
				Name:    "performance",
				Display: "Performance",
				Keywords: []string{
					"performance", "optimization", "monitoring", "observability",
					"metrics", "logging", "tracing", "alerting", "sli", "slo",
					"load balancing", "scalability", "high availability", "latency",
				},
			},
		},
		Emerging: []string{
			"webassembly", "wasm", "web3", "blockchain", "metaverse",
			"augmented reality", "virtual reality", "quantum computing", "edge ai",
			"federated learning", "mlops", "chatops", "gitops",
			"platform engineering", "developer experience",
		},
		Institutions: []string{
			"google", "meta", "microsoft", "amazon", "openai", "anthropic",
			"stanford", "mit", "berkeley", "harvard", "carnegie mellon",
		},
		CategoryNames: map[string]string{
			"cs.AI": "Artificial Intelligence",
			"cs.LG": "Machine Learning",
			"cs.CL": "Computation and Language",
			"cs.SE": "Software Engineering",
			"cs.HC": "Human-Computer Interaction",
			"cs.IR": "Information Retrieval",
			"cs.DB": "Databases",
			"cs.DC": "Distributed Computing",
			"cs.PL": "Programming Languages",
			"cs.CR": "Cryptography and Security",
			"cs.CV": "Computer Vision",
		},
	}
}
