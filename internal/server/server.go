package server

// Server joins the entity-specific HTTP servers into one routable unit.
type Server struct {
	CaseServer
	UsageServer
}

func NewServer(
	caseServer CaseServer,
	usageServer UsageServer,
) Server {
	return Server{
		CaseServer:  caseServer,
		UsageServer: usageServer,
	}
}
