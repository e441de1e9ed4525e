package model

// The seed sets are returned by never-written collections.
// They are rebuilt on each call so callers can't alter them.

const devicon = "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/"

// SeedProjects returns the default portfolio.
func SeedProjects() []*Project {
	return []*Project{
		{
			Base:        Base{ID: "1"},
			Title:       "Nexus AI Agent Platform",
			Category:    "AI & Automation",
			Image:       URL("https://images.unsplash.com/photo-1677442136019-21780ecad995?auto=format&fit=crop&w=800&q=80"),
			Tags:        []string{"LangGraph", "FastAPI"},
			Description: "A multi-agent autonomous system for supply chain optimization.",
		},
		{
			Base:        Base{ID: "2"},
			Title:       "FinStream Analytics",
			Category:    "Web Application",
			Image:       URL("https://images.unsplash.com/photo-1611974714658-66d2df9d3742?auto=format&fit=crop&w=800&q=80"),
			Tags:        []string{"Next.js", "PostgreSQL"},
			Description: "Real-time financial tracking and predictive market forecasting.",
		},
	}
}

// SeedServices returns the default offers.
func SeedServices() []*Service {
	return []*Service{
		{
			Base:        Base{ID: "1"},
			Title:       "Agentic AI Systems",
			Description: "Developing autonomous AI agents capable of complex decision-making and tool use.",
			Icon:        Symbol("Bot"),
			Color:       "from-blue-600 to-cyan-400",
		},
		{
			Base:        Base{ID: "2"},
			Title:       "Custom Web Apps",
			Description: "High-performance full-stack applications built with modern frameworks like React & Next.js.",
			Icon:        Symbol("Globe"),
			Color:       "from-purple-600 to-indigo-500",
		},
		{
			Base:        Base{ID: "3"},
			Title:       "Workflow Automation",
			Description: "Intelligent automation using n8n and LangChain to eliminate repetitive tasks.",
			Icon:        Symbol("Zap"),
			Color:       "from-green-500 to-emerald-400",
		},
	}
}

// SeedTechStack returns the default technology stack.
func SeedTechStack() []*TechItem {
	item := func(id, name string, category TechCategory, color, icon string) *TechItem {
		return &TechItem{
			Base:     Base{ID: id},
			Name:     name,
			Category: category,
			Color:    color,
			Icon:     URL(icon),
		}
	}

	return []*TechItem{
		item("t1", "Java", CategoryLanguages, "text-orange-500", devicon+"java/java-original.svg"),
		item("t2", "Python", CategoryLanguages, "text-blue-400", devicon+"python/python-original.svg"),
		item("t3", "TypeScript", CategoryLanguages, "text-blue-600", devicon+"typescript/typescript-original.svg"),
		item("t4", "C++", CategoryLanguages, "text-blue-700", devicon+"cplusplus/cplusplus-original.svg"),

		item("t5", "React.js", CategoryFrontend, "text-cyan-400", devicon+"react/react-original.svg"),
		item("t6", "Next.js", CategoryFrontend, "text-white", devicon+"nextjs/nextjs-original.svg"),
		item("t7", "Tailwind CSS", CategoryFrontend, "text-sky-400", devicon+"tailwindcss/tailwindcss-original.svg"),

		item("t8", "Node.js", CategoryBackend, "text-green-500", devicon+"nodejs/nodejs-original.svg"),
		item("t9", "FastAPI", CategoryBackend, "text-teal-400", devicon+"fastapi/fastapi-original.svg"),
		item("t10", "Spring Boot", CategoryBackend, "text-green-600", devicon+"spring/spring-original.svg"),

		item("t11", "LangChain", CategoryAI, "text-green-400", "https://raw.githubusercontent.com/langchain-ai/langchain/master/docs/static/img/favicon.png"),
		item("t12", "LangGraph", CategoryAI, "text-purple-400", "https://raw.githubusercontent.com/langchain-ai/langgraph/main/docs/static/img/favicon.png"),
		item("t13", "n8n", CategoryAI, "text-red-500", "https://raw.githubusercontent.com/n8n-io/n8n/master/packages/cli/assets/n8n-logo.png"),
		item("t14", "Pinecone", CategoryAI, "text-blue-300", "https://raw.githubusercontent.com/pinecone-io/pinecone-python-client/main/docs/assets/pinecone-logo.png"),

		item("t15", "MongoDB", CategoryDatabases, "text-green-500", devicon+"mongodb/mongodb-original.svg"),
		item("t16", "PostgreSQL", CategoryDatabases, "text-blue-400", devicon+"postgresql/postgresql-original.svg"),
		item("t17", "MySQL", CategoryDatabases, "text-blue-600", devicon+"mysql/mysql-original.svg"),

		item("t18", "Docker", CategoryDevOps, "text-blue-500", devicon+"docker/docker-original.svg"),
		item("t19", "GitHub", CategoryDevOps, "text-white", devicon+"github/github-original.svg"),
		item("t20", "AWS", CategoryDevOps, "text-orange-400", devicon+"amazonwebservices/amazonwebservices-original.svg"),
	}
}
