package serviceInfo

import "fmt"

type ServiceInfo string

var (
	SERVICE_NAME        ServiceInfo = "Note Annotated Variant Conversion Service"
	SERVICE_WELCOME     ServiceInfo = "Welcome to the Note annotated-VCF conversion API!"
	SERVICE_DESCRIPTION ServiceInfo = "Converts ANNOVAR-annotated VCF files into compressed JSON lines of variant records."

	SERVICE_ARTIFACT    ServiceInfo = "note"
	SERVICE_TYPE_NO_VER ServiceInfo = ServiceInfo(fmt.Sprintf("org.exoclasma:%s", SERVICE_ARTIFACT))
	SERVICE_ID          ServiceInfo = SERVICE_TYPE_NO_VER
)
