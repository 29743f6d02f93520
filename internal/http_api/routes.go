package http_api

// routes sets up the routes for the HTTP server.
func (s *HTTPServer) routes() {
	s.router.GET("/healthz", s.health)

	api := s.router.Group("/api/v1", s.authMiddleware())

	api.GET("/drops", s.listDrops)
	api.GET("/drops/map", s.listMappableDrops)
	api.POST("/drops", s.createDrop)

	api.POST("/claims", s.createClaim)
	api.GET("/claims", s.listMyClaims)
	api.GET("/claims/all", s.listAllClaims)
	api.PUT("/claims/:id/status", s.resolveClaim)

	api.GET("/profile", s.getProfile)
	api.PUT("/profile/wallet", s.setWalletAddress)

	api.GET("/balance", s.getBalance)
}
