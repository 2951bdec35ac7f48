package server

// Данный сервер просто объединяет специфичные HTTP сервера, отвечающие за обработку конкретных сущностей
type Server struct {
	DealServer

	admin *AdminServer
}

// NewServer builds the API. A nil admin server leaves the admin routes out.
func NewServer(
	dealServer DealServer,
	adminServer *AdminServer,
) Server {
	return Server{
		DealServer: dealServer,
		admin:      adminServer,
	}
}
