package storage

import "path"

// Store layout. Template assets are uploaded under templates/; generated
// documents live under their mission.
const (
	templatesPrefix = "templates"
	missionsPrefix  = "missions"
)

// TemplateRef builds the ref of an uploaded template asset.
func TemplateRef(fileName string) string {
	return path.Join(templatesPrefix, fileName)
}

// DocumentRef builds the ref of a generated document's bytes.
func DocumentRef(missionID, fileName string) string {
	return path.Join(missionsPrefix, missionID, "documents", fileName)
}
