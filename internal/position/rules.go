package position

// DefaultRules is the production rewrite table.
func DefaultRules() []Rule {
	return []Rule{
		Replace(FamilySpelling, "fullstack", `\b(Full-Stack|Full Stack|Fullstack)\b`, "FullStack"),
		Replace(FamilySpelling, "dotnet-case", `\bNet\b`, "NET"),
		Replace(FamilySpelling, "nodejs", `\bNodeJS\b`, "Node.js"),
		Replace(FamilySpelling, "vuejs", `\b(Vue |VueJS)\b`, "Vue.js "),
		Replace(FamilySpelling, "react", `(React\.js|ReactJS|React Native|React native)`, "React"),
		Replace(FamilySpelling, "mobile-app", `\b(Mobile App|Mobile app)\b`, "Mobile"),
		Replace(FamilySpelling, "graphic-designer", `\b(Grafik dizayner|Grafik Designer|Graphic UI/UX Designer)\b`, "Graphic Designer"),
		Replace(FamilySpelling, "motion", `\bMoushn\b`, "Motion"),
		Replace(FamilySpelling, "qa", `\bQA\b`, "Q/A"),
		Replace(FamilySpelling, "videographer", `\b(Videograf|Videograph)\b`, "Videographer"),
		Replace(FamilySpelling, "video-editor",
			`\b(Video Montador|Video Montager|Video Montaj Developer|Video Montaj Ustasi|Video Montajor|Video Montajyor|`+
				`Videomantajor|Videomontajor|Videomontage Developer|Videomontajchi|Videomontajyor|Montajor|`+
				`Video Montage Specialist|Video Editing Specialist|Video Editing Developer|Video Editer)\b`,
			"Video Editor"),
		Replace(FamilySpelling, "uiux-designer",
			`\b(UX Designer|UXUI Designer|UI Designer|UI/UX Developer|UX/UI Designer|Product Designer|Web Designer|`+
				`Mobile App Designer|Layout Designer|UXUI|UI/UX|UX UI|UI/UX Designer Developer)\b`,
			"UI/UX Designer"),
		Replace(FamilySpelling, "uiux-designer-case", `\bUI/UX Designer designer\b`, "UI/UX Designer"),

		Replace(FamilyQualifier, "seniority",
			`\b(Professional|IT|Junior|Middle|Senior|Intern|Internship|Team Lead|Lead|Power BI|HTML|CSS|C, |Python, )\b`, ""),

		Replace(FamilyLanguage, "javascript", `\b(React|Vue\.js|Node\.js|Next\.js|NestJS|Angular|TypeScript)\b|//JavaScript`, "JavaScript"),
		Replace(FamilyLanguage, "kotlin-mobile", `\bJava/Kotlin Mobile\b`, "Kotlin Mobile"),
		Replace(FamilyLanguage, "go", `\b(Golang|Go Backend)\b`, "Go"),
		Replace(FamilyLanguage, "dart", `\b(Flutter Mobile|Flutter)\b`, "Dart"),
		Replace(FamilyLanguage, "csharp", `(C# Backend|C# Xamarin|\.NET)`, "C#"),
		Replace(FamilyLanguage, "java-kotlin", `(Java/Kotlin|Java Kotlin)`, "Java"),
		Replace(FamilyLanguage, "java-backend", `\bJava Backend\b`, "Java"),
		Replace(FamilyLanguage, "python", `\b(GoPython|Python Odoo|Python Django)\b`, "Python"),
		Replace(FamilyLanguage, "php", `\b(PHP Laravel|PHP Yii2|Laravel|Yii2|Yii)\b`, "PHP"),
		Replace(FamilyLanguage, "sql",
			`\b(SQL FullStack|SQL DBA|SQL Backend|PostgreSQL Backend|PostgreSQL|Oracle PL/SQL|Oracle|PLSQL|DBA)\b`, "SQL"),
		Replace(FamilyLanguage, "ios", `\b(Swift Mobile|Swift|IOS)\b`, "iOS"),

		Replace(FamilySuffix, "mobilograph", `Mobilograph Developer`, "Mobilograph"),
		Replace(FamilySuffix, "fullstack-developer", `\b FullStack Developer\b`, " FullStack"),
		Replace(FamilySuffix, "frontend-developer", `\b Frontend Developer\b`, " Frontend"),
		Replace(FamilySuffix, "backend-developer", `\b Backend Developer\b`, " Backend"),
		Replace(FamilySuffix, "mobile-developer", `\b Mobile Developer\b`, " Mobile"),
		Replace(FamilySuffix, "android-developer", `\b Android Developer\b`, " Android"),

		Func(FamilyDedup, "slash-repeats", collapseSlashRepeats),
		Func(FamilyDedup, "space-repeats", collapseSpaceRepeats),
		Replace(FamilyDedup, "squeeze-space", `\s{2,}`, " "),
	}
}

// BareTitles are titles that get a " Developer" suffix when nothing else is
// left after the cascade.
var BareTitles = []string{
	"Java", "Go", "Dart", "JavaScript", "Python", "PHP", "SQL", "C#",
	"FullStack", "Frontend", "Backend", "Mobile", "Android", "iOS", "AI",
}
