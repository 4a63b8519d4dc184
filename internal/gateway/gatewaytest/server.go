// Package gatewaytest provides an in-memory LMS backend implementing the
// HTTP contract the console consumes, for gateway and controller tests. It
// supports declining requests with an application message and stalling
// responses to force transport timeouts.
package gatewaytest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openlms-dev/admin-console/internal/models"
)

// Server is the fake backend. Fields guarded by mu; mutate via the helpers.
type Server struct {
	mu        sync.Mutex
	students  []models.Student
	lecturers []models.Lecturer
	admins    []models.Admin
	nextID    int
	calls     map[string]int
	lastAuth  string

	declineMsg string
	stall      time.Duration

	token string
	users map[string]string
	otps  map[string]string
}

// New builds an empty fake backend.
func New() *Server {
	return &Server{
		nextID: 1,
		calls:  map[string]int{},
		token:  "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiJhZG1pbkBsbXMubG9jYWwifQ.x",
		users:  map[string]string{},
		otps:   map[string]string{},
	}
}

// Start runs the fake backend on an httptest server. Callers own the close.
func (s *Server) Start() *httptest.Server {
	gin.SetMode(gin.TestMode)
	return httptest.NewServer(s.Router())
}

// Router builds the gin routes for the consumed contract.
func (s *Server) Router() *gin.Engine {
	r := gin.New()

	api := r.Group("/api")

	api.GET("/student/getAllStudent", s.handle("student.list", s.listStudents))
	api.GET("/student/getStudentById/:id", s.handle("student.get", s.getStudent))
	api.POST("/student/registerStudent", s.handle("student.create", s.createStudent))
	api.PUT("/student/updateStudentById/:id", s.handle("student.update", s.updateStudent))
	api.DELETE("/student/deleteStudentById/:id", s.handle("student.delete", s.deleteStudent))
	api.PUT("/student/updateAccountStatusById/:id", s.handle("student.status", s.setStudentStatus))

	api.GET("/lecture/getAllLecture", s.handle("lecturer.list", s.listLecturers))
	api.GET("/lecture/getLectureById/:id", s.handle("lecturer.get", s.getLecturer))
	api.POST("/lecture/registerLecture", s.handle("lecturer.create", s.createLecturer))
	api.PUT("/lecture/updateLectureById/:id", s.handle("lecturer.update", s.updateLecturer))
	api.DELETE("/lecture/deleteLectureById/:id", s.handle("lecturer.delete", s.deleteLecturer))
	api.PUT("/lecture/updateAccountStatusById/:id", s.handle("lecturer.status", s.setLecturerStatus))

	api.GET("/admin/getAllAdmin", s.handle("admin.list", s.listAdmins))
	api.PUT("/admin/updateAdminById/:id", s.handle("admin.update", s.updateAdmin))
	api.DELETE("/admin/deleteAdminById/:id", s.handle("admin.delete", s.deleteAdmin))

	api.POST("/user/userLogin", s.handle("user.login", s.login))
	api.POST("/user/sendOTP", s.handle("user.sendOTP", s.sendOTP))
	api.POST("/user/resetPassword", s.handle("user.resetPassword", s.resetPassword))

	return r
}

// Decline makes every subsequent call fail with an application-level
// envelope carrying msg. Empty msg restores normal behaviour.
func (s *Server) Decline(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.declineMsg = msg
}

// Stall makes every subsequent handler sleep for d before answering, long
// enough for a short client timeout to fire.
func (s *Server) Stall(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stall = d
}

// Calls reports how many times the named operation was hit.
func (s *Server) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// Token returns the bearer token the fake backend issues at login.
func (s *Server) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// LastAuthorization returns the Authorization header seen on the most recent
// request.
func (s *Server) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

// SeedStudents replaces the student fixture set.
func (s *Server) SeedStudents(students ...models.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students = append([]models.Student{}, students...)
}

// SeedLecturers replaces the lecturer fixture set.
func (s *Server) SeedLecturers(lecturers ...models.Lecturer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lecturers = append([]models.Lecturer{}, lecturers...)
}

// SeedAdmins replaces the admin fixture set.
func (s *Server) SeedAdmins(admins ...models.Admin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins = append([]models.Admin{}, admins...)
}

// SeedUser registers a login credential pair.
func (s *Server) SeedUser(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = password
}

// Students returns a copy of the current student fixtures.
func (s *Server) Students() []models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Student{}, s.students...)
}

func (s *Server) handle(op string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.calls[op]++
		s.lastAuth = c.GetHeader("Authorization")
		decline := s.declineMsg
		stall := s.stall
		s.mu.Unlock()

		if stall > 0 {
			time.Sleep(stall)
		}
		if decline != "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": decline})
			return
		}
		h(c)
	}
}

func (s *Server) allocID() string {
	id := strconv.Itoa(s.nextID)
	s.nextID++
	return id
}

func ok(c *gin.Context, message string, result any) {
	body := gin.H{"status": true, "message": message}
	if result != nil {
		body["result"] = result
	}
	c.JSON(http.StatusOK, body)
}

func declined(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": false, "message": message})
}

func (s *Server) listStudents(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok(c, "students fetched", s.students)
}

func (s *Server) getStudent(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.students {
		if st.ID == c.Param("id") {
			ok(c, "student fetched", st)
			return
		}
	}
	declined(c, http.StatusNotFound, "student not found")
}

type studentBody struct {
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Mode        string `json:"mode"`
	DOB         string `json:"dob"`
	RegNumber   string `json:"reg_number"`
	BatchNumber string `json:"batch_number"`
	Email       string `json:"email"`
	RoleID      int    `json:"role_id"`
}

func (s *Server) createStudent(c *gin.Context) {
	var body studentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		declined(c, http.StatusBadRequest, "invalid payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students = append(s.students, models.Student{
		ID:            s.allocID(),
		RegNumber:     body.RegNumber,
		FullName:      body.FullName,
		Email:         body.Email,
		Phone:         body.Phone,
		Address:       body.Address,
		DOB:           body.DOB,
		Mode:          models.Mode(body.Mode),
		BatchNumber:   body.BatchNumber,
		AccountStatus: models.StatusActive,
	})
	ok(c, "student registered", nil)
}

func (s *Server) updateStudent(c *gin.Context) {
	var body studentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		declined(c, http.StatusBadRequest, "invalid payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, st := range s.students {
		if st.ID != c.Param("id") {
			continue
		}
		st.RegNumber = body.RegNumber
		st.FullName = body.FullName
		st.Email = body.Email
		st.Phone = body.Phone
		st.Address = body.Address
		st.DOB = body.DOB
		st.Mode = models.Mode(body.Mode)
		st.BatchNumber = body.BatchNumber
		s.students[i] = st
		ok(c, "student updated", nil)
		return
	}
	declined(c, http.StatusNotFound, "student not found")
}

func (s *Server) deleteStudent(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, st := range s.students {
		if st.ID == c.Param("id") {
			s.students = append(s.students[:i], s.students[i+1:]...)
			ok(c, "student deleted", nil)
			return
		}
	}
	declined(c, http.StatusNotFound, "student not found")
}

func (s *Server) setStudentStatus(c *gin.Context) {
	var body struct {
		AccountStatus string `json:"account_status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		declined(c, http.StatusBadRequest, "invalid payload")
		return
	}
	status := models.AccountStatus(body.AccountStatus)
	if !status.Valid() {
		declined(c, http.StatusBadRequest, "unknown account status")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, st := range s.students {
		if st.ID == c.Param("id") {
			s.students[i].AccountStatus = status
			ok(c, "account status updated", nil)
			return
		}
	}
	declined(c, http.StatusNotFound, "student not found")
}

type lecturerBody struct {
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Mode      string `json:"mode"`
	DOB       string `json:"dob"`
	RegNumber string `json:"reg_number"`
	NIC       string `json:"nic"`
	Subject   string `json:"subject"`
	Email     string `json:"email"`
	RoleID    int    `json:"role_id"`
}

func (s *Server) listLecturers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok(c, "lecturers fetched", s.lecturers)
}

func (s *Server) getLecturer(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lecturers {
		if l.ID == c.Param("id") {
			ok(c, "lecturer fetched", l)
			return
		}
	}
	declined(c, http.StatusNotFound, "lecturer not found")
}

func (s *Server) createLecturer(c *gin.Context) {
	var body lecturerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		declined(c, http.StatusBadRequest, "invalid payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lecturers = append(s.lecturers, models.Lecturer{
		ID:            s.allocID(),
		RegNumber:     body.RegNumber,
		FullName:      body.FullName,
		Email:         body.Email,
		Phone:         body.Phone,
		Address:       body.Address,
		DOB:           body.DOB,
		Mode:          models.Mode(body.Mode),
		NIC:           body.NIC,
		Subject:       body.Subject,
		AccountStatus: models.StatusActive,
	})
	ok(c, "lecturer registered", nil)
}

func (s *Server) updateLecturer(c *gin.Context) {
	var body lecturerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		declined(c, http.StatusBadRequest, "invalid payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.lecturers {
		if l.ID != c.Param("id") {
			continue
		}
		l.RegNumber = body.RegNumber
		l.FullName = body.FullName
		l.Email = body.Email
		l.Phone = body.Phone
		l.Address = body.Address
		l.DOB = body.DOB
		l.Mode = models.Mode(body.Mode)
		l.NIC = body.NIC
		l.Subject = body.Subject
		s.lecturers[i] = l
		ok(c, "lecturer updated", nil)
		return
	}
	declined(c, http.StatusNotFound, "lecturer not found")
}

func (s *Server) deleteLecturer(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.lecturers {
		if l.ID == c.Param("id") {
			s.lecturers = append(s.lecturers[:i], s.lecturers[i+1:]...)
			ok(c, "lecturer deleted", nil)
			return
		}
	}
	declined(c, http.StatusNotFound, "lecturer not found")
}

func (s *Server) setLecturerStatus(c *gin.Context) {
	var body struct {
		AccountStatus string `json:"account_status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		declined(c, http.StatusBadRequest, "invalid payload")
		return
	}
	status := models.AccountStatus(body.AccountStatus)
	if !status.Valid() {
		declined(c, http.StatusBadRequest, "unknown account status")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.lecturers {
		if l.ID == c.Param("id") {
			s.lecturers[i].AccountStatus = status
			ok(c, "account status updated", nil)
			return
		}
	}
	declined(c, http.StatusNotFound, "lecturer not found")
}

func (s *Server) listAdmins(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok(c, "admins fetched", s.admins)
}

func (s *Server) updateAdmin(c *gin.Context) {
	var body struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		declined(c, http.StatusBadRequest, "invalid payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.admins {
		if a.ID == c.Param("id") {
			a.FullName = body.FullName
			a.Email = body.Email
			a.Phone = body.Phone
			s.admins[i] = a
			ok(c, "admin updated", nil)
			return
		}
	}
	declined(c, http.StatusNotFound, "admin not found")
}

func (s *Server) deleteAdmin(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.admins {
		if a.ID == c.Param("id") {
			s.admins = append(s.admins[:i], s.admins[i+1:]...)
			ok(c, "admin deleted", nil)
			return
		}
	}
	declined(c, http.StatusNotFound, "admin not found")
}

func (s *Server) login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		declined(c, http.StatusBadRequest, "invalid payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if password, found := s.users[body.Email]; !found || password != body.Password {
		declined(c, http.StatusUnauthorized, "invalid email or password")
		return
	}
	ok(c, "login successful", gin.H{
		"token": s.token,
		"userDetails": models.UserDetails{
			ID:       "u1",
			FullName: "Admin User",
			Email:    body.Email,
			Role:     "admin",
		},
	})
}

func (s *Server) sendOTP(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		declined(c, http.StatusBadRequest, "invalid payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.users[body.Email]; !found {
		declined(c, http.StatusNotFound, "no account for this email")
		return
	}
	s.otps[body.Email] = "123456"
	ok(c, "OTP sent", nil)
}

func (s *Server) resetPassword(c *gin.Context) {
	var body struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		declined(c, http.StatusBadRequest, "invalid payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.otps[body.Email] != body.OTP {
		declined(c, http.StatusBadRequest, "invalid or expired OTP")
		return
	}
	s.users[body.Email] = body.NewPassword
	delete(s.otps, body.Email)
	ok(c, "password reset", nil)
}
