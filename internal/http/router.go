package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GuiGui-Web114/ARTSys-Back/internal/config"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/domain/models"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/http/handlers"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/http/middleware"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/mail"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/storage"
	"github.com/GuiGui-Web114/ARTSys-Back/internal/verification"
)

// NewRouter wires middleware, shared collaborators and every route.
func NewRouter(env config.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-access-token"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	var sender mail.Sender
	if env.SMTPUser != "" {
		sender = mail.NewSMTPSender(env.SMTPHost, env.SMTPPort, env.SMTPUser, env.SMTPPass)
	}
	var store verification.Store
	if env.RedisAddr != "" {
		store = verification.NewRedisStore(env.RedisAddr, env.RedisPass)
	} else {
		store = verification.NewMemoryStore()
	}
	handlers.Init(env, sender, store, storage.Uploads{Dir: env.UploadDir})

	r.Static("/uploads", env.UploadDir)

	// rotas públicas
	r.POST("/register", handlers.Register)
	r.POST("/verificar-email", handlers.VerifyEmail)
	r.POST("/login", handlers.Login)
	r.POST("/logout", handlers.Logout)

	admin := r.Group("/admin", middleware.Auth(env.JWTSecret))
	{
		anyRole := middleware.RequireRoles(
			models.RoleRegular, models.RoleAdministrador, models.RoleOficina,
			models.RoleAbastecimento, models.RolePlantao, models.RoleArmazem, models.RoleBilhetes,
		)
		soAdmin := middleware.RequireRoles(models.RoleAdministrador)

		// contas e perfil
		admin.GET("/me", anyRole, handlers.Me)
		admin.GET("/users", soAdmin, handlers.ListUsers)
		admin.POST("/user", soAdmin, handlers.GetUserByID)
		admin.PUT("/user", anyRole, handlers.UpdateProfile)
		admin.POST("/register/users", soAdmin, handlers.AdminCreateUser)

		// armazém
		armazem := middleware.RequireRoles(models.RoleAdministrador, models.RoleArmazem)
		admin.POST("/requerir", anyRole, handlers.CreateRequisition)
		admin.GET("/reqs", armazem, handlers.GetRequisitions)
		admin.PUT("/reqs/:id", armazem, handlers.AllocateRequisition)
		admin.PUT("/reqs/no/:id", armazem, handlers.RejectRequisition)
		admin.PUT("/reqs/on/:id", armazem, handlers.ReopenRequisition)
		admin.PUT("/pedidos/aceitar", armazem, handlers.PermitRequisition)
		admin.PUT("/pedidos/negar", armazem, handlers.DenyRequisition)
		admin.GET("/departamentos", anyRole, handlers.GetDepartments)
		admin.GET("/material", armazem, handlers.GetMaterials)
		admin.POST("/material", armazem, handlers.CreateMaterial)
		admin.PUT("/material/estoque", armazem, handlers.RestockMaterial)

		// viagens e bilhetes
		balcao := middleware.RequireRoles(models.RoleAdministrador, models.RolePlantao, models.RoleBilhetes)
		admin.POST("/viagens", balcao, handlers.CreateTrip)
		admin.GET("/viagens", balcao, handlers.GetTrips)
		admin.PUT("/viagens/:id", balcao, handlers.UpdateTrip)
		admin.DELETE("/viagens/:id", balcao, handlers.DeleteTrip)
		admin.POST("/viagens/iniciar", balcao, handlers.StartTrip)
		admin.GET("/viagens/iniciadas", balcao, handlers.GetStartedTrips)
		admin.PUT("/viagens/iniciadas/:id", balcao, handlers.FinishTrip)
		admin.PUT("/viagens/iniciadas/:id/passenger", balcao, handlers.AlightPassengers)
		admin.PUT("/viagens/iniciadas/:id/cargas", balcao, handlers.UnloadCargo)

		admin.POST("/bilhetes", balcao, handlers.CreateTicket)
		admin.GET("/bilhetes", balcao, handlers.GetTickets)
		admin.POST("/bilhetes/comprar", balcao, handlers.BuyTicket)
		admin.POST("/reservas", anyRole, handlers.CreateReservation)
		admin.GET("/reservas", balcao, handlers.GetReservations)
		admin.GET("/reservas/user", anyRole, handlers.GetMyReservations)
		admin.DELETE("/reservas/:id", balcao, handlers.DeleteReservation)
		admin.POST("/reservas/comprar", balcao, handlers.BuyReservation)

		// passageiros
		admin.POST("/passageiros", balcao, handlers.CreatePassenger)
		admin.GET("/passageiros", balcao, handlers.GetPassengers)
		admin.GET("/passageiros/re", balcao, handlers.GetAllPassengers)
		admin.GET("/passageiros/viagensIn", balcao, handlers.GetPassengersAboard)
		admin.DELETE("/passageiros/:id", balcao, handlers.DeletePassenger)
		admin.GET("/passageiros/:id/bilhete", balcao, handlers.GetETicketPDF)
		admin.PUT("/passageiro/subir", balcao, handlers.BoardPassenger)
		admin.PUT("/carga/subir", balcao, handlers.BoardCargo)

		// entregas
		entregaRoles := middleware.RequireRoles(models.RoleRegular, models.RoleAdministrador, models.RoleBilhetes)
		admin.POST("/entregas", entregaRoles, handlers.CreateDelivery)
		admin.GET("/all/entregas", balcao, handlers.GetPendingDeliveries)
		admin.POST("/all/entregas", anyRole, handlers.GetUserDeliveries)
		admin.GET("/all/entregas/trips", balcao, handlers.GetAcceptedDeliveries)
		admin.GET("/all/entregas/trip", balcao, handlers.GetInTransitDeliveries)
		admin.PUT("/entregas/aceitar", soAdmin, handlers.AcceptDelivery)
		admin.PUT("/entregas/negar", soAdmin, handlers.DenyDelivery)

		// frota
		admin.GET("/all/motoristas", anyRole, handlers.GetDrivers)
		admin.POST("/motoristas", soAdmin, handlers.CreateDriver)
		admin.PUT("/motoristas/:id", soAdmin, handlers.UpdateDriver)
		admin.DELETE("/motoristas/:id", soAdmin, handlers.DeleteDriver)
		admin.GET("/veiculos", anyRole, handlers.GetVehicles)
		admin.POST("/criar/veiculos", soAdmin, handlers.CreateVehicle)
		admin.PUT("/atualizar/veiculo/:id", soAdmin, handlers.UpdateVehicle)
		admin.DELETE("/viaturas/:id", soAdmin, handlers.DeleteVehicle)
		admin.GET("/marcas", anyRole, handlers.GetBrands)
		admin.GET("/modelos", anyRole, handlers.GetModels)

		// agências e cargas de balcão
		plantao := middleware.RequireRoles(models.RoleAdministrador, models.RolePlantao)
		admin.GET("/agencias", anyRole, handlers.GetAgencies)
		admin.GET("/cargas", plantao, handlers.GetCargoRecords)
		admin.POST("/cargas", plantao, handlers.CreateCargoRecord)

		// pátio e combustível
		admin.POST("/saidas", plantao, handlers.CreateExit)
		admin.POST("/entradas", plantao, handlers.CreateEntry)
		admin.GET("/all/saidas", plantao, handlers.GetExits)
		admin.GET("/all/entradas", plantao, handlers.GetEntries)
		admin.POST("/abastecimentos", middleware.RequireRoles(models.RoleAbastecimento), handlers.CreateRefuel)
		admin.GET("/all/abastecimentos", middleware.RequireRoles(models.RoleAbastecimento, models.RoleAdministrador), handlers.GetRefuels)

		// oficina
		oficina := middleware.RequireRoles(models.RoleOficina, models.RoleAdministrador)
		admin.POST("/add/manutencao", oficina, handlers.CreateMaintenance)
		admin.GET("/manutencao", oficina, handlers.GetMaintenances)
		admin.PUT("/manutencao/:id", oficina, handlers.UpdateMaintenanceStatus)

		// painel
		admin.GET("/dashboard/entregas-mensais", soAdmin, handlers.GetMonthlyDeliveries)
		admin.GET("/dashboard/estatisticas", soAdmin, handlers.GetStatistics)
		admin.GET("/dashboard/eficiencia-veiculo/:matricula", soAdmin, handlers.GetVehicleEfficiency)
	}

	return r
}
