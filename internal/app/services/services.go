package services

// Services defined in this package:
// - AuthService: login, admin registration and session logout
// - StudentService: student record CRUD, search, derived fields and reports
