package server

// Server объединяет HTTP-обработчики отдельных сущностей. Пока есть только
// школы со списком, SAT-результатами и избранным.
type Server struct {
	SchoolServer
}

// NewServer собирает общий сервер из серверов сущностей.
func NewServer(
	schoolServer SchoolServer,
) Server {
	return Server{
		SchoolServer: schoolServer,
	}
}
