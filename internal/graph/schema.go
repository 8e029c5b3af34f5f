package graph

// Schema is the GraphQL contract served at /graphql. It is the authoritative
// definition of what is externally settable and visible; the input types
// deliberately accept a narrower field set than the stored records.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	type Query {
		users: [User!]!
		user(id: ID!): User
		userByEmail(email: String!): User
		userByResetToken(token: String!): User
		usernamesByName(name: String!): [String!]!
		followers(userId: ID!): [User!]!
		following(userId: ID!): [User!]!
		projects(page: Int, limit: Int, category: String!): ProjectPage!
		project(id: ID!): Project
		userProjects(userId: ID!, limit: Int): [Project!]!
	}

	type Mutation {
		createUser(input: CreateUserInput!): User!
		updateUser(id: ID!, input: UpdateUserInput!): User!
		followUser(userId: ID!, followId: ID!): User
		unfollowUser(userId: ID!, unfollowId: ID!): User
		createProject(input: CreateProjectInput!): Project!
		updateProject(id: ID!, input: UpdateProjectInput!): Project!
		deleteProject(id: ID!): Boolean!
		requestPasswordReset(email: String!): Boolean!
		resetPassword(token: String!, newPassword: String!): Boolean!
	}

	type User {
		id: ID!
		name: String!
		username: String!
		email: String!
		password: String
		image: String
		description: String
		githubUrl: String
		linkedInUrl: String
		websiteUrl: String
		forgotPasswordToken: String
		forgotPasswordTokenExpiry: String
		following: [User!]!
		followers: [User!]!
		projects: [Project!]!
	}

	type Project {
		id: ID!
		title: String!
		description: String!
		image: String!
		liveSiteUrl: String!
		githubUrl: String!
		category: String!
		createdBy: User!
	}

	type ProjectPage {
		projects: [Project!]!
		totalProjects: Int!
		totalPages: Int!
		currentPage: Int!
	}

	input CreateUserInput {
		name: String!
		username: String!
		email: String!
		password: String
		image: String
	}

	input UpdateUserInput {
		name: String
		username: String
		email: String
		description: String
		image: String
		githubUrl: String
		linkedInUrl: String
		websiteUrl: String
	}

	input CreateProjectInput {
		title: String!
		description: String!
		image: String!
		liveSiteUrl: String!
		githubUrl: String!
		category: String!
		createdBy: ID!
	}

	input UpdateProjectInput {
		title: String
		description: String
		image: String
		liveSiteUrl: String
		githubUrl: String
		category: String
	}
`
