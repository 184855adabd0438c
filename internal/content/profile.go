// Package content produces the text shown inside application windows.
package content

// Profile is the owner of the desktop, shown by several apps.
type Profile struct {
	Name     string
	Tagline  string
	Bio      string
	Role     string
	Location string
	Email    string
	GitHub   string
	LinkedIn string
}

// Project is a portfolio entry.
type Project struct {
	ID          string
	Kind        string
	Title       string
	Description string
	Tech        []string
}

// Education is a degree entry.
type Education struct {
	Degree      string
	Institution string
	Year        string
	Location    string
}

// Experience is a job entry.
type Experience struct {
	Title       string
	Company     string
	Period      string
	Description string
}

// Owner is the profile the bundled apps describe.
var Owner = Profile{
	Name:     "Gazi Faysal Jubayer",
	Tagline:  "Bridging Mechanics and Software",
	Bio:      "A Mechanical Engineer passionate about automation, CAD design, and full-stack web development.",
	Role:     "Mechanical Engineer & Full-Stack Developer",
	Location: "Dhaka, Bangladesh",
	Email:    "gazi@example.com",
	GitHub:   "https://github.com/gazifaysaljubayer",
	LinkedIn: "https://linkedin.com/in/gazifaysaljubayer",
}

// Skills groups skills by discipline.
var Skills = struct {
	Engineering []string
	Programming []string
}{
	Engineering: []string{"SolidWorks", "AutoCAD", "ANSYS", "Thermodynamics", "Matlab"},
	Programming: []string{"Next.js", "Python", "C++", "Three.js", "React", "TypeScript"},
}

// Projects lists portfolio work.
var Projects = []Project{
	{ID: "proj_1", Kind: "code", Title: "Portfolio OS", Description: "A desktop-style portfolio you can click around in", Tech: []string{"Go", "Bubble Tea", "Lip Gloss"}},
	{ID: "proj_2", Kind: "mechanical", Title: "Gearbox Assembly", Description: "3D CAD Model and Stress Analysis of a multi-stage gearbox", Tech: []string{"SolidWorks", "ANSYS"}},
	{ID: "proj_3", Kind: "code", Title: "Automation Dashboard", Description: "Real-time monitoring dashboard for industrial sensors", Tech: []string{"React", "Python", "MQTT"}},
	{ID: "proj_4", Kind: "mechanical", Title: "Heat Exchanger Design", Description: "Shell and tube heat exchanger with thermal analysis", Tech: []string{"AutoCAD", "Matlab"}},
}

// EducationHistory lists degrees, most recent first.
var EducationHistory = []Education{
	{
		Degree:      "Bachelor of Science in Mechanical Engineering",
		Institution: "Bangladesh University of Engineering & Technology",
		Year:        "2020 - 2024",
		Location:    "Dhaka, Bangladesh",
	},
}

// WorkHistory lists jobs, most recent first.
var WorkHistory = []Experience{
	{
		Title:       "Mechanical Design Intern",
		Company:     "Example Engineering Ltd.",
		Period:      "Jun 2023 - Aug 2023",
		Description: "Assisted in CAD modeling and FEA analysis of mechanical components.",
	},
}

// Notification is an entry in the notification center.
type Notification struct {
	ID      string
	Title   string
	Message string
	Time    string
	Icon    string
}

// Notifications are the canned entries shown in the notification center.
var Notifications = []Notification{
	{ID: "1", Title: "New commit pushed", Message: "Gazi just pushed to portfolio-os", Time: "2 hours ago", Icon: "git"},
	{ID: "2", Title: "CAD design updated", Message: "Gearbox assembly revision 3.2", Time: "5 hours ago", Icon: "cube"},
	{ID: "3", Title: "Certificate earned", Message: "Completed Advanced SolidWorks", Time: "1 day ago", Icon: "award"},
}
