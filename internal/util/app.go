package util

func GetAppName() string {
	return "FacultyCert"
}
