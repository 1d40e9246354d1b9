package models

// Course is one of the five fixed programs a student can enrol in.
type Course string

const (
	CourseSystemDevelopment Course = "System Development"
	CourseITSecurity        Course = "IT Security"
	CourseNetworking        Course = "Networking"
	CourseAIDataScience     Course = "AI & Data Science"
	CourseFullStackDev      Course = "Full-Stack Dev"
)

// courseSummaries holds the fixed descriptive text for each program. The texts
// come from the enrolment form and are auto-filled unless an admin overrides
// the summary by hand.
var courseSummaries = map[Course]string{
	CourseSystemDevelopment: "The process of designing, creating, testing, and implementing new software or customized systems to solve problems or meet user needs. It involves methodical phases, known as the System Development Life Cycle (SDLC), and can cover everything from internal custom software to integrating third-party applications. The goal is to produce high-quality, accurate systems that meet client requirements, often involving a collaborative team of specialists.",
	CourseITSecurity:        "Focuses on the practice of protecting computer networks, systems, and data from unauthorized access, attacks, and damage. It involves using a combination of technologies, policies, and physical security measures to ensure the confidentiality, integrity, and availability of information assets. Key areas include network security, endpoint security, and application security, and its importance is growing due to the exponential increase in cyberattacks.",
	CourseNetworking:        "This course covers the foundation of networking and network devices, media, and protocols. Explores network configuration, maintenance, and security in enterprise and cloud environments.",
	CourseAIDataScience:     "Introduces artificial intelligence, data analysis, and machine learning concepts for smart systems. This course is designed to equip individuals with the skills needed for careers such as data scientist, AI engineer, or data analyst, and often include hands-on projects, real-world case studies, and a strong theoretical foundation.",
	CourseFullStackDev:      "You'll learn to build complete web applications using HTML, CSS, JavaScript, React, TypeScript, Node.js, Python, and more.",
}

// Valid reports whether c is one of the fixed programs.
func (c Course) Valid() bool {
	_, ok := courseSummaries[c]
	return ok
}

// Summary returns the fixed descriptive text for c, or "" for an unknown or
// blank course.
func (c Course) Summary() string {
	return courseSummaries[c]
}
