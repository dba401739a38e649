package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"pminternship/internship-ai/internal/models"
)

var internshipCatalog = []models.Internship{
	{
		ID:          "1",
		Title:       "Frontend Developer Intern",
		Company:     "TechVision Solutions",
		Location:    "Bangalore",
		Duration:    "6 months",
		Stipend:     "₹25,000/month",
		Description: "Join our dynamic team as a Frontend Developer Intern and work on cutting-edge web applications using React, TypeScript, and modern development tools. You'll collaborate with senior developers to build user-friendly interfaces and gain hands-on experience in agile development methodologies.",
		Requirements: []string{
			"Currently pursuing or recently completed degree in Computer Science/IT",
			"Strong knowledge of HTML, CSS, JavaScript",
			"Familiarity with React.js and modern frontend frameworks",
			"Understanding of responsive web design principles",
			"Good communication skills and eagerness to learn",
		},
		Skills:              []string{"React", "JavaScript", "CSS", "HTML", "TypeScript"},
		Sector:              "Technology",
		MatchScore:          95,
		ApplicationDeadline: "Jan 30, 2024",
		StartDate:           "Feb 15, 2024",
		Type:                models.InternshipHybrid,
		CompanySize:         "50-200 employees",
		Benefits:            []string{"Mentorship Program", "Flexible Hours", "Learning Budget", "Team Events"},
	},
	{
		ID:          "2",
		Title:       "Data Analytics Intern",
		Company:     "DataInsights Corp",
		Location:    "Mumbai",
		Duration:    "4 months",
		Stipend:     "₹20,000/month",
		Description: "Dive into the world of data analytics and help transform raw data into actionable insights. Work with our data science team to analyze large datasets, create visualizations, and support business decision-making processes using Python, SQL, and modern analytics tools.",
		Requirements: []string{
			"Background in Statistics, Mathematics, Computer Science, or related field",
			"Proficiency in Python or R for data analysis",
			"Experience with SQL databases",
			"Knowledge of data visualization tools (Tableau, Power BI, or similar)",
			"Strong analytical and problem-solving skills",
		},
		Skills:              []string{"Python", "SQL", "Data Analysis", "Machine Learning", "Tableau"},
		Sector:              "Technology",
		MatchScore:          88,
		ApplicationDeadline: "Feb 5, 2024",
		StartDate:           "Feb 20, 2024",
		Type:                models.InternshipOnsite,
		CompanySize:         "200-500 employees",
		Benefits:            []string{"Industry Certification", "Data Science Bootcamp", "Networking Events"},
	},
	{
		ID:          "3",
		Title:       "Digital Marketing Intern",
		Company:     "Creative Marketing Hub",
		Location:    "Delhi",
		Duration:    "3 months",
		Stipend:     "₹15,000/month",
		Description: "Get hands-on experience in digital marketing by working on real campaigns for diverse clients. Learn about SEO, social media marketing, content creation, and analytics while contributing to successful marketing strategies for growing businesses.",
		Requirements: []string{
			"Pursuing degree in Marketing, Communications, or related field",
			"Basic understanding of digital marketing concepts",
			"Familiarity with social media platforms",
			"Good writing and communication skills",
			"Creative mindset and attention to detail",
		},
		Skills:              []string{"Digital Marketing", "SEO", "Social Media", "Content Writing", "Analytics"},
		Sector:              "Marketing",
		MatchScore:          82,
		ApplicationDeadline: "Jan 28, 2024",
		StartDate:           "Feb 10, 2024",
		Type:                models.InternshipHybrid,
		CompanySize:         "10-50 employees",
		Benefits:            []string{"Portfolio Development", "Industry Certifications", "Creative Freedom"},
	},
	{
		ID:          "4",
		Title:       "Backend Developer Intern",
		Company:     "StartupXYZ",
		Location:    "Pune",
		Duration:    "6 months",
		Stipend:     "₹22,000/month",
		Description: "Build and operate REST APIs and background services for a fast-growing product. Work with Java, Node.js and PostgreSQL, write tests, and learn how production systems are deployed and monitored.",
		Requirements: []string{
			"Pursuing degree in Computer Science/IT or related field",
			"Working knowledge of Java or Node.js",
			"Basic SQL and relational database concepts",
			"Familiarity with Git",
		},
		Skills:              []string{"Java", "Node.js", "SQL", "REST APIs", "Git"},
		Sector:              "Startups",
		MatchScore:          78,
		ApplicationDeadline: "Feb 12, 2024",
		StartDate:           "Mar 1, 2024",
		Type:                models.InternshipRemote,
		CompanySize:         "10-50 employees",
		Benefits:            []string{"Remote Work", "Mentorship Program", "Pre-placement Offer"},
	},
	{
		ID:          "5",
		Title:       "Health Informatics Intern",
		Company:     "CareBridge Hospitals",
		Location:    "Hyderabad",
		Duration:    "3 months",
		Stipend:     "₹12,000/month",
		Description: "Support the hospital analytics team in cleaning patient-flow data, building dashboards, and documenting data quality issues across clinical systems.",
		Requirements: []string{
			"Background in Life Sciences, Statistics or Computer Science",
			"Comfort with spreadsheets and basic Python",
			"Attention to detail and discretion with sensitive data",
		},
		Skills:              []string{"Python", "Data Analysis", "Excel", "Communication"},
		Sector:              "Healthcare",
		MatchScore:          70,
		ApplicationDeadline: "Feb 20, 2024",
		StartDate:           "Mar 5, 2024",
		Type:                models.InternshipOnsite,
		CompanySize:         "500+ employees",
		Benefits:            []string{"Certificate of Completion", "Hospital Shadowing"},
	},
	{
		ID:          "6",
		Title:       "Policy Research Intern",
		Company:     "NITI Research Cell",
		Location:    "Delhi",
		Duration:    "2 months",
		Stipend:     "₹10,000/month",
		Description: "Assist researchers with literature reviews, field survey analysis and drafting policy briefs on skilling and employment programmes.",
		Requirements: []string{
			"Pursuing degree in Economics, Public Policy or Social Sciences",
			"Strong writing skills",
			"Basic quantitative analysis",
		},
		Skills:              []string{"Content Writing", "Data Analysis", "Research", "Communication"},
		Sector:              "Government",
		MatchScore:          65,
		ApplicationDeadline: "Jan 31, 2024",
		StartDate:           "Feb 15, 2024",
		Type:                models.InternshipHybrid,
		CompanySize:         "50-200 employees",
		Benefits:            []string{"Government Certificate", "Field Visits"},
	},
}

// InternshipCatalog returns every known posting.
func InternshipCatalog() []models.Internship {
	out := make([]models.Internship, len(internshipCatalog))
	for i, in := range internshipCatalog {
		out[i] = cloneInternship(in)
	}
	return out
}

// MockRecommendations is the fixed recommendation list served by the
// static recommender, ordered by descending match score.
func MockRecommendations() []models.Internship {
	return InternshipCatalog()[:3]
}

func cloneInternship(in models.Internship) models.Internship {
	in.Requirements = slices.Clone(in.Requirements)
	in.Skills = slices.Clone(in.Skills)
	in.Benefits = slices.Clone(in.Benefits)
	return in
}

// LoadCatalog reads postings from a JSON array file. An empty path returns
// the built-in catalog.
func LoadCatalog(path string) ([]models.Internship, error) {
	if path == "" {
		return InternshipCatalog(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var postings []models.Internship
	if err := json.Unmarshal(raw, &postings); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if len(postings) == 0 {
		return nil, errors.New("catalog is empty")
	}

	seen := make(map[string]bool, len(postings))
	for _, in := range postings {
		if in.ID == "" {
			return nil, fmt.Errorf("posting %q has no id", in.Title)
		}
		if seen[in.ID] {
			return nil, fmt.Errorf("duplicate posting id %q", in.ID)
		}
		seen[in.ID] = true
	}
	return postings, nil
}
