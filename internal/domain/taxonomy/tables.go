package taxonomy

// DefaultVersion identifies the embedded table revision.
const DefaultVersion = "2025.2"

// Default returns a fresh copy of the embedded tables. Callers may mutate
// the returned value freely.
func Default() *Taxonomy {
	return &Taxonomy{
		Version:           DefaultVersion,
		Industries:        defaultIndustries(),
		IndustryAdjacency: defaultIndustryAdjacency(),
		Metros:            defaultMetros(),
		Countries:         defaultCountries(),
		RemoteHubs:        defaultRemoteHubs(),
		Families:          defaultFamilies(),
		Templates:         defaultTemplates(),
	}
}

func defaultIndustries() []Industry {
	return []Industry{
		{
			Name: "Technology",
			Keywords: []string{
				"software", "engineer", "developer", "programmer", "devops",
				"data", "machine learning", "cloud", "saas", "cybersecurity",
				"tech",
			},
		},
		{
			Name: "Finance",
			Keywords: []string{
				"finance", "financial", "banking", "investment", "trading",
				"fintech", "accounting", "accountant", "equity", "portfolio",
			},
		},
		{
			Name: "Healthcare",
			Keywords: []string{
				"health", "medical", "clinical", "pharma", "biotech",
				"nurse", "physician", "hospital",
			},
		},
		{
			Name: "Consulting",
			Keywords: []string{
				"consultant", "consulting", "advisory", "strategy",
			},
		},
		{
			Name: "Marketing",
			Keywords: []string{
				"marketing", "brand", "seo", "advertising", "growth",
				"content",
			},
		},
		{
			Name: "Media",
			Keywords: []string{
				"media", "journalist", "editor", "broadcast", "film",
				"publishing",
			},
		},
		{
			Name: "Education",
			Keywords: []string{
				"education", "teacher", "professor", "academic",
				"university", "curriculum",
			},
		},
		{
			Name: "Retail",
			Keywords: []string{
				"retail", "merchandis", "e-commerce", "ecommerce", "store",
			},
		},
		{
			Name: "Manufacturing",
			Keywords: []string{
				"manufacturing", "industrial", "automotive", "supply chain",
				"logistics",
			},
		},
		{
			Name: "Human Resources",
			Keywords: []string{
				"recruiter", "recruiting", "talent", "human resources",
				"people operations",
			},
		},
	}
}

func defaultIndustryAdjacency() map[string][]string {
	return map[string][]string{
		"technology":      {"Finance", "Media", "Healthcare", "Education"},
		"finance":         {"Technology", "Consulting"},
		"consulting":      {"Finance", "Technology", "Human Resources"},
		"healthcare":      {"Technology"},
		"marketing":       {"Media", "Retail"},
		"media":           {"Marketing", "Technology"},
		"retail":          {"Marketing", "Manufacturing"},
		"manufacturing":   {"Retail"},
		"education":       {"Technology"},
		"human resources": {"Consulting"},
	}
}

func defaultMetros() []LocationGroup {
	return []LocationGroup{
		{
			Name: "San Francisco Bay Area",
			Aliases: []string{
				"san francisco", "bay area", "palo alto", "mountain view",
				"menlo park", "san jose", "oakland", "sunnyvale", "cupertino",
			},
		},
		{
			Name:    "New York City",
			Aliases: []string{"new york", "nyc", "brooklyn", "manhattan"},
		},
		{
			Name:    "Seattle",
			Aliases: []string{"seattle", "bellevue", "redmond"},
		},
		{
			Name:    "Austin",
			Aliases: []string{"austin"},
		},
		{
			Name:    "Boston",
			Aliases: []string{"boston", "cambridge, ma"},
		},
		{
			Name:    "Los Angeles",
			Aliases: []string{"los angeles", "santa monica", "pasadena"},
		},
		{
			Name:    "Chicago",
			Aliases: []string{"chicago"},
		},
		{
			Name:    "Denver",
			Aliases: []string{"denver", "boulder"},
		},
		{
			Name:    "Atlanta",
			Aliases: []string{"atlanta"},
		},
		{
			Name:    "London",
			Aliases: []string{"london"},
		},
		{
			Name:    "Toronto",
			Aliases: []string{"toronto"},
		},
		{
			Name:    "Bangalore",
			Aliases: []string{"bangalore", "bengaluru"},
		},
		{
			Name:    "Singapore",
			Aliases: []string{"singapore"},
		},
	}
}

func defaultCountries() []LocationGroup {
	return []LocationGroup{
		{
			Name: "United States",
			Aliases: []string{
				"united states", "usa", "u.s.", "california", "texas",
				"washington", "colorado", "georgia", "illinois",
				"massachusetts", "new york", "san francisco", "seattle",
				"austin", "boston", "los angeles", "chicago", "denver",
				"atlanta",
			},
		},
		{
			Name: "United Kingdom",
			Aliases: []string{
				"united kingdom", "england", "scotland", "london",
				"manchester", "edinburgh",
			},
		},
		{
			Name:    "Canada",
			Aliases: []string{"canada", "toronto", "vancouver", "montreal", "ontario"},
		},
		{
			Name: "India",
			Aliases: []string{
				"india", "bangalore", "bengaluru", "mumbai", "delhi",
				"hyderabad", "pune",
			},
		},
		{
			Name:    "Germany",
			Aliases: []string{"germany", "berlin", "munich", "hamburg"},
		},
		{
			Name:    "Singapore",
			Aliases: []string{"singapore"},
		},
	}
}

func defaultRemoteHubs() []string {
	return []string{
		"San Francisco Bay Area",
		"New York City",
		"Seattle",
		"Austin",
		"London",
		"Toronto",
		"Bangalore",
		"Singapore",
	}
}

func defaultFamilies() []RoleFamily {
	markers := []string{
		"senior", "staff", "lead", "principal", "head", "director", "vp",
		"chief",
	}
	return []RoleFamily{
		{
			Name: "data",
			Keywords: []string{
				"data scientist", "data analyst", "data engineer",
				"machine learning", "ml engineer", "analytics",
				"business intelligence", "statistician",
				"research scientist", "applied scientist", "quantitative",
			},
			SeniorityMarkers: markers,
			Adjacent:         []string{"software", "product", "finance"},
		},
		{
			Name: "software",
			Keywords: []string{
				"software engineer", "software developer", "backend",
				"frontend", "full stack", "devops", "sre",
				"platform engineer", "solutions architect",
				"mobile engineer", "ios developer", "android developer",
				"engineering manager", "technical lead",
			},
			SeniorityMarkers: markers,
			Adjacent:         []string{"data", "product", "design"},
		},
		{
			Name: "product",
			Keywords: []string{
				"product manager", "product owner", "product lead",
				"product director", "chief product", "product analyst",
				"growth product",
			},
			SeniorityMarkers: markers,
			Adjacent:         []string{"data", "software", "design"},
		},
		{
			Name: "design",
			Keywords: []string{
				"designer", "ux", "ui design", "design lead",
				"head of design", "product design",
			},
			SeniorityMarkers: markers,
			Adjacent:         []string{"product", "software"},
		},
		{
			Name: "marketing",
			Keywords: []string{
				"marketing", "growth manager", "brand", "seo",
				"content strateg", "demand generation",
			},
			SeniorityMarkers: markers,
			Adjacent:         []string{"product", "data"},
		},
		{
			Name: "finance",
			Keywords: []string{
				"financial analyst", "investment", "portfolio manager",
				"banker", "equity research", "fp&a", "cfo", "controller",
				"risk analyst",
			},
			SeniorityMarkers: markers,
			Adjacent:         []string{"data", "consulting"},
		},
		{
			Name: "consulting",
			Keywords: []string{
				"consultant", "consulting", "strategy", "partner",
				"advisory",
			},
			SeniorityMarkers: markers,
			Adjacent:         []string{"finance", "product"},
		},
		{
			Name: "operations",
			Keywords: []string{
				"operations", "program manager", "project manager",
				"chief of staff", "supply chain",
			},
			SeniorityMarkers: markers,
			Adjacent:         []string{"consulting", "product"},
		},
		{
			Name: RecruitingFamily,
			Keywords: []string{
				"recruiter", "recruiting", "talent acquisition", "sourcer",
				"people operations", "hr business partner",
			},
			SeniorityMarkers: markers,
			Adjacent:         []string{"consulting"},
		},
	}
}

func defaultTemplates() []JobTemplate {
	return []JobTemplate{
		{
			Title:    "Data Scientist",
			Keywords: []string{"data scientist", "machine learning", "ml engineer", "applied scientist"},
			Skills: []string{
				"python", "sql", "machine learning", "statistics",
				"deep learning", "pandas", "spark", "tensorflow", "pytorch",
				"a/b testing",
			},
		},
		{
			Title:    "Data Engineer",
			Keywords: []string{"data engineer", "analytics engineer"},
			Skills: []string{
				"python", "sql", "spark", "airflow", "dbt", "snowflake",
				"kafka", "aws",
			},
		},
		{
			Title:    "Software Engineer",
			Keywords: []string{"software engineer", "software developer", "backend", "frontend", "full stack", "devops", "sre"},
			Skills: []string{
				"python", "java", "go", "javascript", "typescript", "react",
				"kubernetes", "docker", "aws", "microservices",
				"system design",
			},
		},
		{
			Title:    "Product Manager",
			Keywords: []string{"product manager", "product owner", "product lead"},
			Skills: []string{
				"product strategy", "roadmapping", "user research",
				"a/b testing", "sql", "analytics", "agile",
				"stakeholder management",
			},
		},
		{
			Title:    "Designer",
			Keywords: []string{"designer", "ux", "ui design"},
			Skills: []string{
				"figma", "sketch", "user research", "prototyping",
				"wireframing", "design systems", "usability testing",
			},
		},
		{
			Title:    "Marketing Manager",
			Keywords: []string{"marketing", "growth manager", "brand"},
			Skills: []string{
				"seo", "sem", "google analytics", "content strategy",
				"email marketing", "brand strategy",
			},
		},
		{
			Title:    "Financial Analyst",
			Keywords: []string{"financial analyst", "investment", "equity research", "fp&a"},
			Skills: []string{
				"financial modeling", "excel", "valuation", "dcf",
				"forecasting", "sql",
			},
		},
		{
			Title:    "Recruiter",
			Keywords: []string{"recruiter", "recruiting", "talent acquisition", "sourcer"},
			Skills: []string{
				"recruiting", "sourcing", "talent management", "onboarding",
				"employee relations",
			},
		},
	}
}
